package dao

import "strings"

// ListQuery is a normalized page request; Offset and Limit are already
// computed by the caller.
type ListQuery struct {
	Search string
	Limit  int
	Offset int
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (q ListQuery) like() string {
	return "%" + likeEscaper.Replace(q.Search) + "%"
}
