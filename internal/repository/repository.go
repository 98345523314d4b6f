package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var ErrDBNotReady = errors.New("database not initialized")

// DBSetter is implemented by every repository so the server can inject a connection after startup.
type DBSetter interface {
	SetDB(db *gorm.DB)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-folded LIKE pattern matching s anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
