package handler

import (
	"context"
	"sync"
	"time"

	"flashstudy/internal/config"
	"flashstudy/internal/middleware"
	"flashstudy/internal/service"
	"flashstudy/internal/speech"
	"flashstudy/internal/study"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const requestTimeout = 10 * time.Second

// Handler manages all bot interactions
type Handler struct {
	bot               *tele.Bot
	authService       *service.AuthService
	deckService       *service.DeckService
	preferenceService *service.PreferenceService
	guesser           speech.Guesser
	studyCfg          config.StudyConfig
	logger            *zap.Logger

	// Active study sessions by user
	sessions   map[int64]*userSession
	sessionMux sync.RWMutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	deckService *service.DeckService,
	preferenceService *service.PreferenceService,
	guesser speech.Guesser,
	studyCfg config.StudyConfig,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:               bot,
		authService:       authService,
		deckService:       deckService,
		preferenceService: preferenceService,
		guesser:           guesser,
		studyCfg:          studyCfg,
		logger:            logger,
		sessions:          make(map[int64]*userSession),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	auth := middleware.AuthMiddleware(h.authService, h.logger)

	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/study", h.handleStudy, auth)

	// Text messages: password or typed answers
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	for _, btn := range studyButtons {
		btn := btn
		h.bot.Handle(&btn, h.handleCallback, auth)
	}

	// Generic callback handler for anything that did not match a button
	h.bot.Handle(tele.OnCallback, h.handleCallback, auth)
}

// Shutdown ends every active session
func (h *Handler) Shutdown() {
	h.sessionMux.Lock()
	defer h.sessionMux.Unlock()

	for userID, us := range h.sessions {
		us.session.Close()
		delete(h.sessions, userID)
	}
}

func (h *Handler) getSession(userID int64) *userSession {
	h.sessionMux.RLock()
	defer h.sessionMux.RUnlock()
	return h.sessions[userID]
}

func (h *Handler) setSession(userID int64, us *userSession) {
	h.sessionMux.Lock()
	defer h.sessionMux.Unlock()

	if old, ok := h.sessions[userID]; ok {
		old.session.Close()
	}
	h.sessions[userID] = us
}

func (h *Handler) dropSession(userID int64) {
	h.sessionMux.Lock()
	defer h.sessionMux.Unlock()

	if us, ok := h.sessions[userID]; ok {
		us.session.Close()
		delete(h.sessions, userID)
	}
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// Inline keyboard buttons
var (
	btnPrev         = tele.Btn{Unique: "nav_prev", Text: "⬅️"}
	btnFlip         = tele.Btn{Unique: "nav_flip", Text: "🔄 Перевернуть"}
	btnNext         = tele.Btn{Unique: "nav_next", Text: "➡️"}
	btnSpeak        = tele.Btn{Unique: "nav_speak", Text: "🔊 Слушать"}
	btnSide         = tele.Btn{Unique: "nav_side", Text: "↔️ Сторона"}
	btnTermVoice    = tele.Btn{Unique: "voice_term"}
	btnDefVoice     = tele.Btn{Unique: "voice_def"}
	btnWritten      = tele.Btn{Unique: "mode_recall", Text: "✍️ Written"}
	btnQuiz         = tele.Btn{Unique: "mode_quiz", Text: "🎯 Multiple Choice"}
	btnCards        = tele.Btn{Unique: "mode_cards", Text: "◀️ К карточкам"}
	btnDelete       = tele.Btn{Unique: "delete", Text: "🗑 Удалить"}
	btnDeleteYes    = tele.Btn{Unique: "delete_yes", Text: "Да"}
	btnDeleteNo     = tele.Btn{Unique: "delete_no", Text: "Нет"}
	btnTermToDef    = tele.Btn{Unique: "quiz_t2d", Text: "Термин → определение"}
	btnDefToTerm    = tele.Btn{Unique: "quiz_d2t", Text: "Определение → термин"}
	btnQuizOption   = tele.Btn{Unique: "quiz_opt"}
	btnQuizReselect = tele.Btn{Unique: "quiz_reselect", Text: "🔁 Сменить режим"}
	btnHint         = tele.Btn{Unique: "recall_hint", Text: "💡 Подсказка"}
	btnSubmit       = tele.Btn{Unique: "recall_submit", Text: "✅ Проверить"}
	btnExit         = tele.Btn{Unique: "exit", Text: "❌ Закрыть"}
)

var studyButtons = []tele.Btn{
	btnPrev, btnFlip, btnNext, btnSpeak, btnSide, btnTermVoice, btnDefVoice,
	btnWritten, btnQuiz, btnCards, btnDelete, btnDeleteYes, btnDeleteNo,
	btnTermToDef, btnDefToTerm, btnQuizOption, btnQuizReselect,
	btnHint, btnSubmit, btnExit,
}

// buttonKeys maps buttons that stand in for keyboard keys
var buttonKeys = map[string]study.Key{
	btnPrev.Unique:   study.KeyArrowLeft,
	btnNext.Unique:   study.KeyArrowRight,
	btnFlip.Unique:   study.KeySpace,
	btnSubmit.Unique: study.KeyEnter,
}

const mainMenuText = "🏠 Главное меню\n\nОтправьте /study <номер набора>, чтобы начать занятие."
