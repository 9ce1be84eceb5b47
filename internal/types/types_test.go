package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeParticipant(t *testing.T) {
	cases := map[string]string{
		"6281234567890":                "6281234567890@s.whatsapp.net",
		"+62 812-3456-7890":            "6281234567890@s.whatsapp.net",
		" 6281234567890 ":              "6281234567890@s.whatsapp.net",
		"6281234567890@s.whatsapp.net": "6281234567890@s.whatsapp.net",
		"123456@lid":                   "123456@lid",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeParticipant(in), "input %q", in)
	}
}

func TestIsGroup(t *testing.T) {
	assert.True(t, IsGroup("120363000000000000@g.us"))
	assert.False(t, IsGroup("6281234567890@s.whatsapp.net"))
	assert.False(t, IsGroup("g.us"))

	evt := InboundEvent{ChatID: "1203@g.us"}
	assert.True(t, evt.IsGroup())
}
