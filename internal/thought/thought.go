package thought

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// timeNow is a package-level variable for testability.
var timeNow = time.Now

// ErrBlankContent is returned when submitted text is empty or whitespace-only.
var ErrBlankContent = errors.New("content must not be blank")

// submission is the validated shape of user input.
type submission struct {
	Content string `validate:"notblank"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// ValidateContent checks raw input before it is handed to the simulator.
// Blank input is the only rejection and yields ErrBlankContent.
func ValidateContent(content string) error {
	err := validate.Struct(submission{Content: content})
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "notblank" {
				return ErrBlankContent
			}
		}
	}
	return err
}

// NewID returns a fresh random identifier for a thought.
func NewID() string {
	return uuid.New().String()
}

// New builds the Thought for content from its analysis: a fresh id, the
// current time, the overall resonance scaled to 0-10, the lexicon terms as
// semantic fields and every related concept, in order, as connections.
func New(content string, a *GedankenAnalyse) *Thought {
	t := &Thought{
		ID:        NewID(),
		Content:   content,
		Timestamp: timeNow().UTC(),
	}
	if a == nil {
		return t
	}

	level := float64(a.Resonanzfilter.Gesamtresonanz) / 10
	t.ResonanceLevel = &level

	t.SemanticFields = make([]string, 0, len(a.CoreLexikon))
	t.Connections = []string{}
	for _, item := range a.CoreLexikon {
		t.SemanticFields = append(t.SemanticFields, item.Begriff)
		t.Connections = append(t.Connections, item.Verwandte...)
	}
	return t
}
