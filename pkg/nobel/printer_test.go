package nobel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xhad/nobel/internal/models"
)

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	p.PrintAll([]models.Summary{
		{FullName: "Andrea Ghez", AwardYear: "2020", Affiliation: "University of California"},
		{FullName: "Roger Penrose", AwardYear: "2020", Affiliation: "University of Oxford"},
	})

	expected := "---------------------------------\n" +
		"Full name: Andrea Ghez\n" +
		"Award year: 2020\n" +
		"Affiliations: University of California\n" +
		"\n" +
		"---------------------------------\n" +
		"Full name: Roger Penrose\n" +
		"Award year: 2020\n" +
		"Affiliations: University of Oxford\n" +
		"\n"
	assert.Equal(t, expected, buf.String())
}
