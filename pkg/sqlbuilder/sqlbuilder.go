package sqlbuilder

import (
	"strings"

	"github.com/Masterminds/squirrel"
)

// SQLiteLowerFunc имя функции, которую SQLite соединение должно зарегистрировать (strings.ToLower).
// Встроенный LOWER() в SQLite меняет регистр только ASCII букв.
const SQLiteLowerFunc = "unicode_lower"

// Builder билдер запросов конкретного диалекта
type Builder struct {
	squirrel.StatementBuilderType
	lower string
}

// Postgres билдер с плейсхолдерами $1, $2, ...
var Postgres = Builder{
	StatementBuilderType: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	lower:                "LOWER",
}

// SQLite билдер с плейсхолдерами ?
var SQLite = Builder{
	StatementBuilderType: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	lower:                SQLiteLowerFunc,
}

// ContainsFold условие "column содержит value без учета регистра", спецсимволы LIKE экранируются
// Обе стороны приводятся к нижнему регистру с учетом Unicode ("Église" = "église")
func (b Builder) ContainsFold(column, value string) squirrel.Sqlizer {
	return squirrel.Expr(b.lower+"("+column+") LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(value))+"%")
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
