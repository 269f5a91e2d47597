package psqlbuilder

import "github.com/Masterminds/squirrel"

// Обёртка над squirrel с PostgreSQL placeholder'ами ($1, $2, ...)
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Select создает SELECT запрос с PostgreSQL placeholder'ами
func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

// Insert создает INSERT запрос с PostgreSQL placeholder'ами
func Insert(table string) squirrel.InsertBuilder {
	return builder.Insert(table)
}

// Update создает UPDATE запрос с PostgreSQL placeholder'ами
func Update(table string) squirrel.UpdateBuilder {
	return builder.Update(table)
}

// Delete создает DELETE запрос с PostgreSQL placeholder'ами
func Delete(table string) squirrel.DeleteBuilder {
	return builder.Delete(table)
}
