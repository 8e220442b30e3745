package assessment

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var questionsYAML []byte

// ErrIncomplete is returned when not every question has been answered.
var ErrIncomplete = errors.New("questionnaire is not complete")

// Option is a single answer choice. Traits maps a trait name to a weight.
type Option struct {
	Text   string         `yaml:"text" json:"text" validate:"required"`
	Traits map[string]int `yaml:"traits" json:"traits" validate:"required,min=1,dive,keys,required,endkeys,min=1,max=5"`
}

type Question struct {
	ID       int      `yaml:"id" json:"id" validate:"required,gt=0"`
	Category string   `yaml:"category" json:"category" validate:"required"`
	Prompt   string   `yaml:"prompt" json:"prompt" validate:"required"`
	Options  []Option `yaml:"options" json:"options" validate:"min=2,dive"`
}

// Questionnaire is the immutable, ordered set of questions shown in the
// personality layer.
type Questionnaire struct {
	questions []Question
	byID      map[int]int
}

// Default returns the built-in questionnaire.
func Default() *Questionnaire {
	q, err := Parse(questionsYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in questionnaire is invalid: %v", err))
	}
	return q
}

// Parse decodes and validates a YAML questionnaire.
func Parse(data []byte) (*Questionnaire, error) {
	var questions []Question
	if err := yaml.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("decode questionnaire: %w", err)
	}

	return New(questions)
}

// New builds a questionnaire from the given questions, validating ids and weights.
func New(questions []Question) (*Questionnaire, error) {
	copied := make([]Question, len(questions))
	copy(copied, questions)

	q := &Questionnaire{questions: copied}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	return q, nil
}

// Validate checks that ids are unique, every question has at least two
// options and every trait weight is within 1-5. It also rebuilds the id index.
func (q *Questionnaire) Validate() error {
	if len(q.questions) == 0 {
		return errors.New("questionnaire has no questions")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	byID := make(map[int]int, len(q.questions))

	for i, question := range q.questions {
		if err := validate.Struct(question); err != nil {
			return fmt.Errorf("question %d: %w", question.ID, err)
		}
		if _, ok := byID[question.ID]; ok {
			return fmt.Errorf("duplicate question id %d", question.ID)
		}
		byID[question.ID] = i
	}

	q.byID = byID
	return nil
}

// Questions returns the questions in display order.
func (q *Questionnaire) Questions() []Question {
	out := make([]Question, len(q.questions))
	copy(out, q.questions)
	return out
}

func (q *Questionnaire) Len() int {
	return len(q.questions)
}

// Find returns the question with the given id.
func (q *Questionnaire) Find(id int) (Question, bool) {
	idx, ok := q.byID[id]
	if !ok {
		return Question{}, false
	}
	return q.questions[idx], true
}

// Answer records the option a user picked for one question.
type Answer struct {
	QuestionID int    `json:"question_id"`
	Question   string `json:"question"`
	Category   string `json:"category"`
	Option     Option `json:"option"`
}

// Answers accumulates one selected option per question.
type Answers struct {
	items map[int]Answer
}

func NewAnswers() *Answers {
	return &Answers{items: make(map[int]Answer)}
}

// Select stores the option at index for the question. Answering the same
// question again replaces the previous choice.
func (a *Answers) Select(q *Questionnaire, questionID, index int) error {
	question, ok := q.Find(questionID)
	if !ok {
		return fmt.Errorf("unknown question id %d", questionID)
	}
	if index < 0 || index >= len(question.Options) {
		return fmt.Errorf("question %d: option index %d out of range", questionID, index)
	}

	a.items[questionID] = Answer{
		QuestionID: questionID,
		Question:   question.Prompt,
		Category:   question.Category,
		Option:     question.Options[index],
	}
	return nil
}

// Len returns the number of answered questions.
func (a *Answers) Len() int {
	return len(a.items)
}

// Complete reports whether every question of q has an answer.
func (a *Answers) Complete(q *Questionnaire) bool {
	for _, question := range q.questions {
		if _, ok := a.items[question.ID]; !ok {
			return false
		}
	}
	return true
}

// Get returns the answer for a question id.
func (a *Answers) Get(questionID int) (Answer, bool) {
	answer, ok := a.items[questionID]
	return answer, ok
}

// List returns the answers ordered by question id.
func (a *Answers) List() []Answer {
	ids := make([]int, 0, len(a.items))
	for id := range a.items {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]Answer, 0, len(ids))
	for _, id := range ids {
		out = append(out, a.items[id])
	}
	return out
}

// Selected returns the chosen options ordered by question id.
func (a *Answers) Selected() []Option {
	list := a.List()
	out := make([]Option, 0, len(list))
	for _, answer := range list {
		out = append(out, answer.Option)
	}
	return out
}
