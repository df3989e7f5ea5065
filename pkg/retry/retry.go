package retry

import (
	"context"
	"math/rand"
	"time"
)

type Operation = func(ctx context.Context) error

type Config struct {
	MaxRetries    int
	BackoffFactor float64
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	Jitter        time.Duration
}

// NewDefaultConfig is tuned for talking to local services that recover
// within a few seconds.
func NewDefaultConfig() *Config {
	return &Config{
		MaxRetries:    3,
		BackoffFactor: 2.0,
		InitialDelay:  200 * time.Millisecond,
		MaxDelay:      5 * time.Second,
		Jitter:        50 * time.Millisecond,
	}
}

type Retrier struct {
	config *Config
	rnd    *rand.Rand
}

func NewRetrier(config *Config) *Retrier {
	return &Retrier{
		config: config,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func NewDefaultRetrier() *Retrier {
	return NewRetrier(NewDefaultConfig())
}

// Do runs op until it succeeds, the attempt budget is spent, or the context
// ends. Delays between attempts grow by BackoffFactor up to MaxDelay, with
// random jitter added so concurrent retriers do not align.
func (r *Retrier) Do(ctx context.Context, op Operation) error {
	var err error
	delay := r.config.InitialDelay

	for attempt := 0; ; attempt++ {
		err = op(ctx)
		if err == nil {
			return nil
		}
		if attempt == r.config.MaxRetries {
			return err
		}

		wait := delay + time.Duration(r.rnd.Float64()*float64(r.config.Jitter))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}

		delay = time.Duration(float64(delay) * r.config.BackoffFactor)
		if delay > r.config.MaxDelay {
			delay = r.config.MaxDelay
		}
	}
}
