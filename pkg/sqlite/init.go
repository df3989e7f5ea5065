package sqlite

/*
#cgo CFLAGS: -Wno-deprecated-declarations
#include <sqlite3.h>

// Entry point exported by the statically linked libsqlite_vec.a.
int sqlite3_vec_init(sqlite3*, char**, const sqlite3_api_routines*);

// Registers sqlite-vec for every connection opened after this call.
void register_vec_extension(void) {
    sqlite3_auto_extension((void(*)(void))sqlite3_vec_init);
}
*/
import "C"
import (
	"database/sql"

	"github.com/mattn/go-sqlite3"
)

// The "sqlite3_vec" driver is a stock mattn driver with the sqlite-vec
// extension preloaded via sqlite3_auto_extension, so vec0 virtual tables and
// KNN MATCH work on every connection, including goose's.
func init() {
	C.register_vec_extension()
	sql.Register("sqlite3_vec", &sqlite3.SQLiteDriver{})
}
