package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLessonContentValidate(t *testing.T) {
	tests := []struct {
		name    string
		content LessonContent
		wantErr bool
	}{
		{
			name: "valid quiz",
			content: LessonContent{
				Type: ContentTypeQuiz,
				Questions: []Question{
					{ID: "q1", Question: "Pick one", Options: []string{"a", "b"}, CorrectAnswer: 1},
				},
			},
		},
		{
			name: "valid paged",
			content: LessonContent{
				Type:  ContentTypePaged,
				Pages: []Page{{Title: "Intro", Body: "Welcome"}},
			},
		},
		{
			name:    "unknown type",
			content: LessonContent{Type: "video"},
			wantErr: true,
		},
		{
			name: "quiz question with one option",
			content: LessonContent{
				Type:      ContentTypeQuiz,
				Questions: []Question{{ID: "q1", Options: []string{"only"}, CorrectAnswer: 0}},
			},
			wantErr: true,
		},
		{
			name: "correct answer out of range",
			content: LessonContent{
				Type:      ContentTypeQuiz,
				Questions: []Question{{ID: "q1", Options: []string{"a", "b"}, CorrectAnswer: 2}},
			},
			wantErr: true,
		},
		{
			name: "negative correct answer",
			content: LessonContent{
				Type:      ContentTypeQuiz,
				Questions: []Question{{ID: "q1", Options: []string{"a", "b"}, CorrectAnswer: -1}},
			},
			wantErr: true,
		},
		{
			name: "quiz carrying pages",
			content: LessonContent{
				Type:      ContentTypeQuiz,
				Questions: []Question{{ID: "q1", Options: []string{"a", "b"}, CorrectAnswer: 0}},
				Pages:     []Page{{Title: "x", Body: "y"}},
			},
			wantErr: true,
		},
		{
			name: "paged carrying questions",
			content: LessonContent{
				Type:      ContentTypePaged,
				Pages:     []Page{{Title: "x", Body: "y"}},
				Questions: []Question{{ID: "q1", Options: []string{"a", "b"}, CorrectAnswer: 0}},
			},
			wantErr: true,
		},
		{
			name:    "paged without pages",
			content: LessonContent{Type: ContentTypePaged},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.content.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLessonContentScan(t *testing.T) {
	quizJSON := `{"type":"quiz_lesson","questions":[{"id":"q1","question":"Pick","options":["a","b","c"],"correctAnswer":2,"explanation":"because"}]}`

	t.Run("from string", func(t *testing.T) {
		var c LessonContent
		require.NoError(t, c.Scan(quizJSON))
		assert.True(t, c.IsQuiz())
		assert.Equal(t, 1, c.QuestionCount())
		q := c.QuestionByID("q1")
		require.NotNil(t, q)
		assert.Equal(t, 2, q.CorrectAnswer)
	})

	t.Run("from bytes", func(t *testing.T) {
		var c LessonContent
		require.NoError(t, c.Scan([]byte(`{"type":"paged","pages":[{"title":"Intro","body":"Hi"}]}`)))
		assert.False(t, c.IsQuiz())
		assert.Len(t, c.Pages, 1)
	})

	t.Run("null column", func(t *testing.T) {
		var c LessonContent
		assert.Error(t, c.Scan(nil))
	})

	t.Run("malformed json", func(t *testing.T) {
		var c LessonContent
		assert.Error(t, c.Scan("{not json"))
	})

	t.Run("invalid union rejected on read", func(t *testing.T) {
		var c LessonContent
		err := c.Scan(`{"type":"quiz_lesson","questions":[{"id":"q1","options":["a","b"],"correctAnswer":5}]}`)
		assert.Error(t, err)
	})
}

func TestLessonContentValue(t *testing.T) {
	t.Run("valid content round-trips", func(t *testing.T) {
		src := LessonContent{
			Type: ContentTypeQuiz,
			Questions: []Question{
				{ID: "q1", Question: "Pick", Options: []string{"a", "b"}, CorrectAnswer: 0},
			},
		}
		v, err := src.Value()
		require.NoError(t, err)

		var got LessonContent
		require.NoError(t, got.Scan(v))
		assert.Equal(t, src, got)
	})

	t.Run("invalid content never reaches the database", func(t *testing.T) {
		bad := LessonContent{Type: "mystery"}
		_, err := bad.Value()
		assert.Error(t, err)
	})
}

func TestQuestionByIDMissing(t *testing.T) {
	c := LessonContent{
		Type:      ContentTypeQuiz,
		Questions: []Question{{ID: "q1", Options: []string{"a", "b"}, CorrectAnswer: 0}},
	}
	assert.Nil(t, c.QuestionByID("nope"))
}
