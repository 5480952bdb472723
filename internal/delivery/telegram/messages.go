// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/kids-number-trainer-bot/internal/domain/entities"
)

// Plain text messages.
const (
	msgOutOfRangeNumber = "พิมพ์ตัวเลขตั้งแต่ 1 ถึง 100 นะ"
	msgUseRange         = "ใช้แบบนี้: /range 20 30"
	msgInvalidRange     = "ช่วงไม่ถูกต้อง ตัวอย่าง: /range 20 30"
	msgInternalError    = "มีบางอย่างผิดพลาด ลองใหม่อีกครั้งนะ"
	msgUnknownCommand   = "ไม่รู้จักคำสั่งนี้ ดูคำสั่งทั้งหมดได้ที่ /help"
	msgAlreadyAnswered  = "ข้อนี้ตอบไปแล้ว"
	msgQuizOver         = "ทำครบทุกข้อแล้ว"
	msgSpeechOff        = "ตอนนี้ยังออกเสียงไม่ได้"
	msgProgressReset    = "ล้างความคืบหน้าแล้ว เริ่มใหม่จากเลข 1"
	msgDailyOn          = "🌟 เปิดรับเลขประจำวันแล้ว"
	msgDailyOff         = "ปิดรับเลขประจำวันแล้ว"
)

const (
	cardsPerPage   = 10
	progressBarLen = 20
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

func welcomeText() string {
	var sb strings.Builder

	sb.WriteString(bold("สวัสดี! 👋"))
	sb.WriteString("\n\n")
	sb.WriteString(md("มาฝึกนับเลข 1 ถึง 100 เป็นภาษาอังกฤษกัน"))
	sb.WriteString("\n\n")
	sb.WriteString(md("📚 "))
	sb.WriteString(bold("เรียน"))
	sb.WriteString(md(" ดูแฟลชการ์ดทีละใบ พลิกดูคำอ่าน และฟังเสียง"))
	sb.WriteString("\n")
	sb.WriteString(md("📝 "))
	sb.WriteString(bold("ทดสอบ"))
	sb.WriteString(md(" เลือกคำศัพท์ที่ถูกต้องจาก 3 ตัวเลือก"))
	sb.WriteString("\n\n")
	sb.WriteString(md("พิมพ์ตัวเลข เช่น 42 เพื่อเปิดการ์ดใบนั้น หรือดูคำสั่งทั้งหมดที่ /help"))

	return sb.String()
}

func helpText() string {
	lines := []string{
		"/learn เปิดแฟลชการ์ด",
		"/quiz เริ่มทดสอบ",
		"/next /prev การ์ดถัดไป / ก่อนหน้า",
		"/shuffle สุ่มการ์ด",
		"/restart เริ่มจากเลข 1",
		"/speak ฟังเสียงการ์ดหรือคำถามปัจจุบัน",
		"/all ดูตัวเลขทั้งหมด",
		"/range N M ดูตัวเลขตั้งแต่ N ถึง M",
		"/daily เปิดหรือปิดเลขประจำวัน",
		"/reset ล้างความคืบหน้าทั้งหมด",
	}

	return bold("คำสั่ง") + "\n\n" + md(strings.Join(lines, "\n"))
}

// cardText renders a flashcard. The front shows the numeral first, the back the word.
func cardText(card *entities.Card, back bool) string {
	var sb strings.Builder

	sb.WriteString(bold("แฟลชการ์ด"))
	sb.WriteString(md(fmt.Sprintf(" %d / %d", card.Position+1, card.Total)))
	sb.WriteString("\n\n")

	value := strconv.Itoa(card.Number.Value)
	if !back {
		sb.WriteString(bold(value))
		sb.WriteString("\n")
		sb.WriteString(md(card.Number.Word))
		sb.WriteString("\n\n")
		sb.WriteString(italic("กด 🔄 เพื่อพลิก"))
	} else {
		sb.WriteString(bold(card.Number.Word))
		sb.WriteString("\n")
		sb.WriteString(md(value))
		sb.WriteString("\n")
		sb.WriteString(md(card.Thai))
		sb.WriteString("\n\n")
		sb.WriteString(italic("กด 🔄 อีกครั้งเพื่อกลับ"))
	}

	return sb.String()
}

func dailyText(card *entities.Card) string {
	return bold("🌟 เลขประจำวัน") + "\n\n" +
		bold(strconv.Itoa(card.Number.Value)) + "\n" +
		md(card.Number.Word) + "\n" +
		md(card.Thai)
}

func questionText(q *entities.Question) string {
	var sb strings.Builder

	sb.WriteString(md(fmt.Sprintf("ทดสอบข้อที่ %d / %d", q.Position+1, q.Total)))
	sb.WriteString("\n")
	sb.WriteString(md("เลือกคำศัพท์ที่ถูกต้อง"))
	sb.WriteString("\n\n")
	sb.WriteString(bold(strconv.Itoa(q.Answer.Value)))
	sb.WriteString("\n\n")
	sb.WriteString(md(buildProgressBar(q.Position, q.Total, progressBarLen)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("คะแนน: %d", q.Score)))

	return sb.String()
}

// answeredText is the question text after the answer, with the score already updated.
func answeredText(res *entities.AnswerResult) string {
	answered := entities.Question{
		Position: res.Position,
		Total:    res.Total,
		Answer:   res.Answer,
		Score:    res.Score,
	}

	verdict := "✅ เก่งมาก!"
	if !res.IsCorrect {
		verdict = "❌ คำตอบที่ถูกคือ " + res.Answer.Word
	}

	return questionText(&answered) + "\n\n" + bold(verdict)
}

func summaryText(sum entities.QuizSummary) string {
	var sb strings.Builder

	sb.WriteString(bold("สรุปผลการทดสอบ"))
	sb.WriteString("\n\n")
	sb.WriteString(bold(fmt.Sprintf("%d / %d", sum.Score, sum.Total)))
	sb.WriteString("\n")
	sb.WriteString(md(buildProgressBar(sum.Score, sum.Total, progressBarLen)))
	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("ทำได้ %d%%", sum.Percent)))

	return sb.String()
}

// buildCardsPage renders one page of the numbers list and the total number of pages.
func buildCardsPage(cards []entities.Card, page int) (text string, totalPages int) {
	totalPages = (len(cards) + cardsPerPage - 1) / cardsPerPage
	if totalPages == 0 || page < 0 || page >= totalPages {
		return "", totalPages
	}

	start := page * cardsPerPage
	end := min(start+cardsPerPage, len(cards))

	var sb strings.Builder
	for i, c := range cards[start:end] {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(bold(strconv.Itoa(c.Number.Value)))
		sb.WriteString(md(fmt.Sprintf("  %s · %s", c.Number.Word, c.Thai)))
	}

	return sb.String(), totalPages
}

// buildProgressBar creates ASCII progress bar.
func buildProgressBar(current, total, length int) string {
	if total <= 0 {
		return "[" + strings.Repeat("░", length) + "]"
	}

	filled := min(current*length/total, length)
	filled = max(filled, 0)

	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", length-filled) + "]"
}
