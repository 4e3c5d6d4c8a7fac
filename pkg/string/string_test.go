package string

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSnakeCase(t *testing.T) {
	cases := map[string]string{
		"Filter":          "filter",
		"PageSize":        "page_size",
		"ViewID":          "view_id",
		"LastMeasurement": "last_measurement",
		"":                "",
	}
	for in, want := range cases {
		assert.Equal(t, want, ToSnakeCase(in), in)
	}
}

func TestTrimStrings(t *testing.T) {
	a, b := "  acme ", "\tglobex\n"
	TrimStrings(&a, &b, nil)
	assert.Equal(t, "acme", a)
	assert.Equal(t, "globex", b)
}
