package handler

import (
	"testing"

	"flashstudy/internal/domain"
	"flashstudy/internal/study"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func navigatorView(st domain.NavigatorState) study.View {
	return study.View{SetName: "Animals", Mode: study.ModeFlashcards, Navigator: &st}
}

func TestRenderView_EmptyDeck(t *testing.T) {
	text, markup := renderView(study.View{SetName: "Animals", Mode: study.ModeFlashcards, Empty: true})

	assert.Contains(t, text, "В наборе нет карточек")
	require.Len(t, markup.InlineKeyboard, 1)
	assert.Equal(t, "exit", markup.InlineKeyboard[0][0].Unique)
}

func TestRenderView_Navigator(t *testing.T) {
	card := domain.Card{Term: "cat", Definition: "кот"}

	t.Run("front", func(t *testing.T) {
		text, markup := renderView(navigatorView(domain.NavigatorState{
			Index: 1, Total: 3, TermFront: true, Card: card,
		}))
		assert.Contains(t, text, "2 / 3")
		assert.Contains(t, text, "cat")
		assert.NotContains(t, text, "кот")
		assert.Len(t, markup.InlineKeyboard, 5)
	})

	t.Run("flipped", func(t *testing.T) {
		text, _ := renderView(navigatorView(domain.NavigatorState{
			Total: 1, TermFront: true, Flipped: true, Card: card,
		}))
		assert.Contains(t, text, "кот")
		assert.NotContains(t, text, "cat")
	})

	t.Run("definition first", func(t *testing.T) {
		text, _ := renderView(navigatorView(domain.NavigatorState{Total: 1, Card: card}))
		assert.Contains(t, text, "кот")
	})

	t.Run("voice labels", func(t *testing.T) {
		_, markup := renderView(navigatorView(domain.NavigatorState{
			Total: 1, TermFront: true, TermVoice: true, Card: card,
		}))
		row := markup.InlineKeyboard[2]
		assert.Equal(t, "🔊 Термин", row[0].Text)
		assert.Equal(t, "🔇 Определение", row[1].Text)
	})

	t.Run("delete confirmation", func(t *testing.T) {
		v := navigatorView(domain.NavigatorState{Total: 1, TermFront: true, Card: card})
		v.ConfirmDelete = true

		text, markup := renderView(v)
		assert.Contains(t, text, "Удалить набор «Animals»?")
		require.Len(t, markup.InlineKeyboard, 1)
		assert.Equal(t, "delete_yes", markup.InlineKeyboard[0][0].Unique)
		assert.Equal(t, "delete_no", markup.InlineKeyboard[0][1].Unique)
	})
}

func TestRenderView_Quiz(t *testing.T) {
	t.Run("selecting direction", func(t *testing.T) {
		text, markup := renderView(study.View{SetName: "Animals", Mode: study.ModeQuiz, Quiz: &domain.QuizState{
			Phase: domain.QuizSelectingDirection, Total: 4,
		}})
		assert.Contains(t, text, "Выберите направление")
		assert.Equal(t, "quiz_t2d", markup.InlineKeyboard[0][0].Unique)
		assert.Equal(t, "quiz_d2t", markup.InlineKeyboard[1][0].Unique)
	})

	t.Run("answering", func(t *testing.T) {
		text, markup := renderView(study.View{SetName: "Animals", Mode: study.ModeQuiz, Quiz: &domain.QuizState{
			Phase:      domain.QuizAnswering,
			Index:      0,
			Total:      4,
			Prompt:     "cat",
			Options:    []string{"собака", "кот", "птица", "рыба"},
			Deal:       4,
			LastResult: domain.ResultIncorrect,
		}})
		assert.Contains(t, text, "1 / 4")
		assert.Contains(t, text, "cat")
		assert.Contains(t, text, "Неправильно")

		// Two options per row plus the bottom row
		require.Len(t, markup.InlineKeyboard, 3)
		opt := markup.InlineKeyboard[0][1]
		assert.Equal(t, "quiz_opt", opt.Unique)
		assert.Equal(t, "4|1", opt.Data)
		assert.Equal(t, "кот", opt.Text)
	})

	t.Run("completed", func(t *testing.T) {
		text, _ := renderView(study.View{SetName: "Animals", Mode: study.ModeQuiz, Quiz: &domain.QuizState{
			Phase: domain.QuizCompleted, Total: 4, ErrorCount: 2, Completed: true,
		}})
		assert.Contains(t, text, "Тест пройден")
		assert.Contains(t, text, "Ошибок: 2")
	})
}

func TestRenderView_Recall(t *testing.T) {
	t.Run("with hint", func(t *testing.T) {
		text, markup := renderView(study.View{SetName: "Animals", Mode: study.ModeRecall, Recall: &domain.RecallState{
			Total: 2, Prompt: "кот", HintLength: 2, Hint: "ca", LastResult: domain.ResultCorrect,
		}})
		assert.Contains(t, text, "кот")
		assert.Contains(t, text, "💡 ca")
		assert.Contains(t, text, "Правильно")
		assert.Equal(t, "recall_hint", markup.InlineKeyboard[0][0].Unique)
		assert.Equal(t, "recall_submit", markup.InlineKeyboard[0][1].Unique)
	})

	t.Run("no hint", func(t *testing.T) {
		text, _ := renderView(study.View{SetName: "Animals", Mode: study.ModeRecall, Recall: &domain.RecallState{
			Total: 2, Prompt: "кот",
		}})
		assert.NotContains(t, text, "💡")
	})

	t.Run("completed", func(t *testing.T) {
		text, markup := renderView(study.View{SetName: "Animals", Mode: study.ModeRecall, Recall: &domain.RecallState{
			Total: 2, Completed: true, ErrorCount: 1,
		}})
		assert.Contains(t, text, "Ошибок: 1")
		require.Len(t, markup.InlineKeyboard, 1)
		assert.Equal(t, "mode_cards", markup.InlineKeyboard[0][0].Unique)
	})
}

func TestFocusPrompt(t *testing.T) {
	_, markup := focusPrompt(&domain.RecallState{TypedAnswer: "ca"})
	assert.True(t, markup.ForceReply)
	assert.Equal(t, "ca", markup.Placeholder)
}
