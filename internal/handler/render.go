package handler

import (
	"fmt"
	"strconv"
	"strings"

	"flashstudy/internal/domain"
	"flashstudy/internal/study"

	tele "gopkg.in/telebot.v3"
)

// renderView turns a session view into message text and an inline keyboard
func renderView(v study.View) (string, *tele.ReplyMarkup) {
	markup := &tele.ReplyMarkup{}

	if v.Empty {
		markup.Inline(markup.Row(btnExit))
		return fmt.Sprintf("📭 %s\n\nВ наборе нет карточек.", v.SetName), markup
	}

	switch {
	case v.Navigator != nil:
		return renderNavigator(v, markup)
	case v.Quiz != nil:
		return renderQuiz(v, markup)
	case v.Recall != nil:
		return renderRecall(v, markup)
	}

	markup.Inline(markup.Row(btnExit))
	return fmt.Sprintf("📚 %s", v.SetName), markup
}

func renderNavigator(v study.View, markup *tele.ReplyMarkup) (string, *tele.ReplyMarkup) {
	st := v.Navigator

	var b strings.Builder
	fmt.Fprintf(&b, "📚 %s\n%d / %d\n\n", v.SetName, st.Index+1, st.Total)
	if st.Flipped {
		b.WriteString("🔄 ")
	}
	b.WriteString(st.Visible())
	switch st.Slide {
	case domain.SlideNext:
		b.WriteString("\n\n➡️")
	case domain.SlidePrev:
		b.WriteString("\n\n⬅️")
	}

	if v.ConfirmDelete {
		fmt.Fprintf(&b, "\n\n⚠️ Удалить набор «%s»?", v.SetName)
		markup.Inline(markup.Row(btnDeleteYes, btnDeleteNo))
		return b.String(), markup
	}

	termVoice := btnTermVoice
	termVoice.Text = voiceLabel("Термин", st.TermVoice)
	defVoice := btnDefVoice
	defVoice.Text = voiceLabel("Определение", st.DefVoice)

	markup.Inline(
		markup.Row(btnPrev, btnFlip, btnNext),
		markup.Row(btnSpeak, btnSide),
		markup.Row(termVoice, defVoice),
		markup.Row(btnWritten, btnQuiz),
		markup.Row(btnDelete, btnExit),
	)
	return b.String(), markup
}

func voiceLabel(name string, on bool) string {
	if on {
		return "🔊 " + name
	}
	return "🔇 " + name
}

func renderQuiz(v study.View, markup *tele.ReplyMarkup) (string, *tele.ReplyMarkup) {
	st := v.Quiz

	switch st.Phase {
	case domain.QuizSelectingDirection:
		markup.Inline(
			markup.Row(btnTermToDef),
			markup.Row(btnDefToTerm),
			markup.Row(btnCards),
		)
		return fmt.Sprintf("🎯 %s\n\nВыберите направление теста:", v.SetName), markup

	case domain.QuizCompleted:
		markup.Inline(markup.Row(btnQuizReselect), markup.Row(btnCards))
		return fmt.Sprintf("🎉 Тест пройден!\n\nОшибок: %d\n\nВернитесь к набору «%s» или пройдите тест ещё раз.",
			st.ErrorCount, v.SetName), markup
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🎯 %s\n%d / %d\n\n%s", v.SetName, st.Index+1, st.Total, st.Prompt)
	b.WriteString(resultLine(st.LastResult))

	rows := make([]tele.Row, 0, len(st.Options)/2+2)
	var row tele.Row
	for i, option := range st.Options {
		// The deal ties the tap to this option list
		row = append(row, markup.Data(option, btnQuizOption.Unique, strconv.FormatUint(st.Deal, 10), strconv.Itoa(i)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, markup.Row(btnQuizReselect, btnCards))
	markup.Inline(rows...)

	return b.String(), markup
}

func renderRecall(v study.View, markup *tele.ReplyMarkup) (string, *tele.ReplyMarkup) {
	st := v.Recall

	if st.Completed {
		markup.Inline(markup.Row(btnCards))
		return fmt.Sprintf("🎉 Все термины написаны!\n\nОшибок: %d\n\nНажмите ниже, чтобы вернуться к набору «%s».",
			st.ErrorCount, v.SetName), markup
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✍️ %s\n%d / %d\n\n%s", v.SetName, st.Index+1, st.Total, st.Prompt)
	if st.HintLength > 0 {
		fmt.Fprintf(&b, "\n\n💡 %s", st.Hint)
	}
	b.WriteString(resultLine(st.LastResult))
	b.WriteString("\n\nНапишите термин в ответ на это сообщение.")

	markup.Inline(
		markup.Row(btnHint, btnSubmit),
		markup.Row(btnCards),
	)
	return b.String(), markup
}

func resultLine(r domain.Result) string {
	switch r {
	case domain.ResultCorrect:
		return "\n\n✅ Правильно!"
	case domain.ResultIncorrect:
		return "\n\n❌ Неправильно"
	}
	return ""
}

// focusPrompt asks the client to open the keyboard for a typed answer
func focusPrompt(st *domain.RecallState) (string, *tele.ReplyMarkup) {
	markup := &tele.ReplyMarkup{
		ForceReply:  true,
		Placeholder: st.TypedAnswer,
	}
	return "✍️ Ваш ответ:", markup
}
