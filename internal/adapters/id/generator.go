package id

import (
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	PrefixMessage    = "pm"
	PrefixSession    = "ps"
	PrefixProfile    = "pcp"
	PrefixNewsletter = "pn"
	PrefixUser       = "pu"
	PrefixRequest    = "preq"
)

type Generator struct{}

func New() *Generator {
	return &Generator{}
}

func (g *Generator) generate(prefix string) string {
	id, err := gonanoid.New(21)
	if err != nil {
		return prefix + "_fallback"
	}
	return prefix + "_" + id
}

func (g *Generator) GenerateMessageID() string {
	return g.generate(PrefixMessage)
}

func (g *Generator) GenerateSessionID() string {
	return g.generate(PrefixSession)
}

func (g *Generator) GenerateProfileID() string {
	return g.generate(PrefixProfile)
}

func (g *Generator) GenerateNewsletterID() string {
	return g.generate(PrefixNewsletter)
}

func (g *Generator) GenerateUserID() string {
	return g.generate(PrefixUser)
}

func (g *Generator) GenerateRequestID() string {
	return g.generate(PrefixRequest)
}

// HasPrefix reports whether id was minted with prefix.
func HasPrefix(id, prefix string) bool {
	rest, ok := strings.CutPrefix(id, prefix+"_")
	return ok && rest != ""
}
