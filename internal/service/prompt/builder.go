package prompt

import (
	"fmt"
	"strings"
	"sync"

	"github.com/zhouzirui/persona-lab/backend/internal/model/persona"
)

// Builder turns a raw question into a persona-styled prompt.
type Builder struct {
	personas persona.Store
}

// NewBuilder creates a Builder reading from the supplied catalog.
func NewBuilder(personas persona.Store) *Builder {
	return &Builder{personas: personas}
}

// Personas returns every persona known to the builder, in catalog order.
func (b *Builder) Personas() []persona.Persona {
	return b.personas.List()
}

// Apply wraps question with the framing text of the persona identified by personaID.
// The question is embedded verbatim. An unknown id yields persona.ErrPersonaNotFound
// and an empty string.
func (b *Builder) Apply(question, personaID string) (string, error) {
	p, err := b.personas.FindByID(personaID)
	if err != nil {
		return "", err
	}
	return Compose(p, question), nil
}

// SystemPrompt creates the role instruction handed to a chat model alongside
// the composed prompt.
func (b *Builder) SystemPrompt(personaID string) (string, error) {
	p, err := b.personas.FindByID(personaID)
	if err != nil {
		return "", err
	}

	specialty := "通识教育"
	if len(p.Specialty) > 0 {
		specialty = strings.Join(p.Specialty, "、")
	}

	return fmt.Sprintf(`你是%s，一位擅长%s的老师。

角色设定：
- 名字：%s
- 教学风格：%s
- 口头禅：%s

请始终保持角色一致性，用%s的风格回答学生的问题，并在合适的时候自然地引用你的口头禅。`,
		p.Name,
		specialty,
		p.Name,
		p.TeachingStyle,
		p.Catchphrase,
		p.Name,
	), nil
}

// Compose builds the prompt for p around question. It is a pure function of its inputs.
func Compose(p persona.Persona, question string) string {
	var builder strings.Builder

	builder.WriteString("【")
	builder.WriteString(p.Name)
	builder.WriteString("】")
	if p.TeachingStyle != "" {
		builder.WriteString("教学风格：")
		builder.WriteString(p.TeachingStyle)
	}
	builder.WriteString("\n")
	if len(p.Specialty) > 0 {
		builder.WriteString("擅长领域：")
		builder.WriteString(strings.Join(p.Specialty, "、"))
		builder.WriteString("\n")
	}

	builder.WriteString("\n")
	builder.WriteString(prefixOrDefault(p))
	builder.WriteString("\n\n学生的问题：\n")
	builder.WriteString(question)
	builder.WriteString("\n\n")
	builder.WriteString(suffixOrDefault(p))
	builder.WriteString("\n请记住")
	builder.WriteString(p.Name)
	builder.WriteString("的口头禅：「")
	builder.WriteString(p.Catchphrase)
	builder.WriteString("」")

	return builder.String()
}

func prefixOrDefault(p persona.Persona) string {
	if p.Template.Prefix != "" {
		return p.Template.Prefix
	}
	return fmt.Sprintf("下面请%s用自己的方式回答学生的问题。", p.Name)
}

func suffixOrDefault(p persona.Persona) string {
	if p.Template.Suffix != "" {
		return p.Template.Suffix
	}
	return fmt.Sprintf("请以%s的口吻作答，循序渐进，让学生真正理解。", p.Name)
}

var defaultBuilder = sync.OnceValue(func() *Builder {
	return NewBuilder(persona.MustCatalog(persona.Seed()))
})

// GetAllTeacherPersonas lists the built-in teacher personas.
func GetAllTeacherPersonas() []persona.Persona {
	return defaultBuilder().Personas()
}

// ApplyTeacherPersona applies a built-in teacher persona to question.
func ApplyTeacherPersona(question, personaID string) (string, error) {
	return defaultBuilder().Apply(question, personaID)
}
