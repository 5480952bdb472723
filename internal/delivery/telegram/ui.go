package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/kids-number-trainer-bot/internal/domain/entities"
)

// buildCardKeyboard builds the flashcard navigation keyboard.
func buildCardKeyboard(card *entities.Card, back bool) tgbotapi.InlineKeyboardMarkup {
	v := card.Number.Value

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️", buildCardCallback(cardPrev, v, back)),
			tgbotapi.NewInlineKeyboardButtonData("🔄 พลิก", buildCardCallback(cardFlip, v, back)),
			tgbotapi.NewInlineKeyboardButtonData("▶️", buildCardCallback(cardNext, v, back)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔀 สุ่ม", buildCardCallback(cardShuffle, v, back)),
			tgbotapi.NewInlineKeyboardButtonData("🔊 ฟัง", buildCardCallback(cardSpeak, v, back)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏮ เริ่มจาก 1", buildCardCallback(cardRestart, v, back)),
			tgbotapi.NewInlineKeyboardButtonData("📝 ทดสอบ", buildModeCallback(string(entities.ModeQuiz))),
		),
	)
}

// buildDailyKeyboard is attached to the number of the day.
func buildDailyKeyboard(card *entities.Card) tgbotapi.InlineKeyboardMarkup {
	v := card.Number.Value

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 เปิดการ์ด", buildCardCallback(cardOpen, v, false)),
			tgbotapi.NewInlineKeyboardButtonData("🔊 ฟัง", buildCardCallback(cardSpeak, v, false)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔕 ปิดเลขประจำวัน", buildDailyToggleCallback()),
		),
	)
}

// buildQuizKeyboard builds one button per option plus quiz controls.
func buildQuizKeyboard(q *entities.Question) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(q.Options)+2)
	for _, option := range q.Options {
		data := buildQuizAnswerCallback(q.Round, q.Position, option.Value)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(option.Word, data),
		))
	}

	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔊 ฟัง", buildQuizSpeakCallback(q.Answer.Value)),
			tgbotapi.NewInlineKeyboardButtonData("🔄 เริ่มใหม่", buildQuizResetCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 เรียน", buildModeCallback(string(entities.ModeLearn))),
		),
	)

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildAnsweredKeyboard marks the options of an answered question.
// The correct option gets ✅; after a wrong answer every other option gets ❌.
func buildAnsweredKeyboard(options []entities.NumberWord, res *entities.AnswerResult) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(options))
	for _, option := range options {
		label := option.Word
		switch {
		case option.Value == res.Answer.Value:
			label = "✅ " + label
		case !res.IsCorrect:
			label = "❌ " + label
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildNoopCallback()),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuizResultKeyboard builds keyboard for quiz results screen.
func buildQuizResultKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 เริ่มใหม่", buildQuizResetCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 เรียน", buildModeCallback(string(entities.ModeLearn))),
		),
	)
}

// buildListKeyboard builds pagination keyboard for the numbers list.
func buildListKeyboard(page, totalPages, from, to int) *tgbotapi.InlineKeyboardMarkup {
	if totalPages <= 1 {
		return nil
	}

	var row []tgbotapi.InlineKeyboardButton
	if page > 0 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("◀️ ก่อนหน้า", buildListCallback(page-1, from, to)))
	}
	if page < totalPages-1 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("ถัดไป ▶️", buildListCallback(page+1, from, to)))
	}

	kb := tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{row},
	}

	return &kb
}

// optionsFromKeyboard recovers the options shown with a question from its answer buttons.
func optionsFromKeyboard(kb *tgbotapi.InlineKeyboardMarkup) []entities.NumberWord {
	if kb == nil {
		return nil
	}

	var options []entities.NumberWord
	for _, row := range kb.InlineKeyboard {
		for _, button := range row {
			if button.CallbackData == nil {
				continue
			}
			cd := decodeCallback(*button.CallbackData)
			if cd.Action != actionQuiz || cd.param(0) != quizAnswer {
				continue
			}
			value, ok := cd.intParam(3)
			if !ok {
				continue
			}
			options = append(options, entities.NumberWord{Value: value, Word: button.Text})
		}
	}

	return options
}
