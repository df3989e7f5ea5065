package ingest

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/admiralicic/starting-ragchatbot-codebase/internal/core"
)

var lessonMarker = regexp.MustCompile(`^Lesson\s+(\d+):\s*(.*)$`)

// DocumentSection is a run of content belonging to one lesson, or to the
// course preamble when Lesson is nil.
type DocumentSection struct {
	Lesson  *int
	Content string
}

// ParseCourse reads course metadata and per-lesson bodies out of a
// normalized document. Expected layout:
//
//	Course Title: <title>
//	Course Link: <url>
//	Course Instructor: <name>
//
//	Lesson 0: <lesson title>
//	Lesson Link: <url>
//	<content>
//
// Every header is optional: a missing title falls back to the file name stem
// and a missing instructor to "Unknown". Content before the first lesson
// marker, or a document with no markers at all, becomes lesson-less content.
func ParseCourse(filename, text string) (core.Course, []DocumentSection) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	course := core.Course{Instructor: "Unknown"}

	// Header block: metadata lines in any order until the first body line.
	i := 0
header:
	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		switch {
		case line == "":
		case strings.HasPrefix(line, "Course Title:") && course.Title == "":
			course.Title = strings.TrimSpace(strings.TrimPrefix(line, "Course Title:"))
		case strings.HasPrefix(line, "Course Link:") && course.Link == "":
			course.Link = strings.TrimSpace(strings.TrimPrefix(line, "Course Link:"))
		case strings.HasPrefix(line, "Course Instructor:"):
			if v := strings.TrimSpace(strings.TrimPrefix(line, "Course Instructor:")); v != "" {
				course.Instructor = v
			}
		default:
			break header
		}
	}

	var sections []DocumentSection
	var current strings.Builder
	var currentLesson *int

	flush := func() {
		if content := strings.TrimSpace(current.String()); content != "" {
			sections = append(sections, DocumentSection{Lesson: currentLesson, Content: content})
		}
		current.Reset()
	}

	for ; i < len(lines); i++ {
		line := lines[i]

		if m := lessonMarker.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			flush()

			number, _ := strconv.Atoi(m[1])
			lesson := core.Lesson{Number: number, Title: strings.TrimSpace(m[2])}

			// Optional link line directly after the marker.
			if i+1 < len(lines) {
				if next := strings.TrimSpace(lines[i+1]); strings.HasPrefix(next, "Lesson Link:") {
					lesson.Link = strings.TrimSpace(strings.TrimPrefix(next, "Lesson Link:"))
					i++
				}
			}

			course.Lessons = append(course.Lessons, lesson)
			n := number
			currentLesson = &n
			continue
		}

		current.WriteString(line)
		current.WriteString("\n")
	}
	flush()

	if course.Title == "" {
		base := filepath.Base(filename)
		course.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return course, sections
}
