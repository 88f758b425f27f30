package postgres

import (
	"fmt"
	"strings"
)

// whereBuilder pliega predicados opcionales en una sola cláusula WHERE con
// placeholders posicionales. Cada columna tiene un único camino de código:
// el predicado se agrega solo cuando apply es true, sin ramas ad hoc en los
// repositorios.
type whereBuilder struct {
	conds []string
	args  []any
}

// Eq agrega "column = $n" si apply.
func (b *whereBuilder) Eq(column string, value any, apply bool) *whereBuilder {
	return b.cond(column+" = %s", value, apply)
}

// Gte agrega "column >= $n" si apply.
func (b *whereBuilder) Gte(column string, value any, apply bool) *whereBuilder {
	return b.cond(column+" >= %s", value, apply)
}

// Lte agrega "column <= $n" si apply.
func (b *whereBuilder) Lte(column string, value any, apply bool) *whereBuilder {
	return b.cond(column+" <= %s", value, apply)
}

// Lt agrega "column < $n" si apply.
func (b *whereBuilder) Lt(column string, value any, apply bool) *whereBuilder {
	return b.cond(column+" < %s", value, apply)
}

func (b *whereBuilder) cond(format string, value any, apply bool) *whereBuilder {
	if !apply {
		return b
	}
	b.args = append(b.args, value)
	b.conds = append(b.conds, fmt.Sprintf(format, fmt.Sprintf("$%d", len(b.args))))
	return b
}

// Bind registra un argumento extra (LIMIT, OFFSET) y devuelve su placeholder.
func (b *whereBuilder) Bind(value any) string {
	b.args = append(b.args, value)
	return fmt.Sprintf("$%d", len(b.args))
}

// Clause devuelve " WHERE ..." (con espacio inicial) o cadena vacía si no hay predicados.
func (b *whereBuilder) Clause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// Args devuelve los argumentos en el orden de sus placeholders.
func (b *whereBuilder) Args() []any {
	return b.args
}
