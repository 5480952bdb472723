package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionCard  = "card"
	actionMode  = "mode"
	actionQuiz  = "quiz"
	actionList  = "list"
	actionDaily = "daily"
	actionNoop  = "noop"
)

// Card sub-actions.
const (
	cardPrev    = "prev"
	cardNext    = "next"
	cardFlip    = "flip"
	cardShuffle = "shuffle"
	cardSpeak   = "speak"
	cardRestart = "restart"
	cardOpen    = "open"
)

// Card faces.
const (
	faceFront = "a"
	faceBack  = "b"
)

// Quiz sub-actions.
const (
	quizAnswer = "ans"
	quizSpeak  = "speak"
	quizReset  = "reset"
)

const dailyToggle = "toggle"

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// param returns the i-th parameter or "" when it is missing.
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

func (cd callbackData) intParam(i int) (int, bool) {
	n, err := strconv.Atoi(cd.param(i))
	return n, err == nil
}

// buildCardCallback builds callback data for a flashcard button.
// The card's value and visible face travel with the button.
func buildCardCallback(op string, value int, back bool) string {
	face := faceFront
	if back {
		face = faceBack
	}
	return callbackData{
		Action: actionCard,
		Params: []string{op, strconv.Itoa(value), face},
	}.encode()
}

func buildModeCallback(mode string) string {
	return callbackData{Action: actionMode, Params: []string{mode}}.encode()
}

// buildQuizAnswerCallback builds callback data for answering a quiz question.
func buildQuizAnswerCallback(round string, position, value int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{
			quizAnswer,
			round,
			strconv.Itoa(position),
			strconv.Itoa(value),
		},
	}.encode()
}

func buildQuizSpeakCallback(value int) string {
	return callbackData{Action: actionQuiz, Params: []string{quizSpeak, strconv.Itoa(value)}}.encode()
}

func buildQuizResetCallback() string {
	return callbackData{Action: actionQuiz, Params: []string{quizReset}}.encode()
}

// buildListCallback builds callback data for opening a page of the numbers list.
func buildListCallback(page, from, to int) string {
	return callbackData{
		Action: actionList,
		Params: []string{
			strconv.Itoa(page),
			strconv.Itoa(from),
			strconv.Itoa(to),
		},
	}.encode()
}

func buildDailyToggleCallback() string {
	return callbackData{Action: actionDaily, Params: []string{dailyToggle}}.encode()
}

func buildNoopCallback() string {
	return actionNoop
}
