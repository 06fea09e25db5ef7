package httpapi

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-telegram/bot"
)

type verifyRequest struct {
	InitData string `json:"initData"`
}

type verifyResponse struct {
	OK      bool   `json:"ok"`
	DevMode bool   `json:"dev_mode,omitempty"`
	User    any    `json:"user,omitempty"`
	Warning string `json:"warning,omitempty"`
}

// HandleAuthVerify POST /auth/verify
// Проверяет initData Telegram WebApp. Без токена бота работает dev-режим:
// проверка пропускается, клиент получает предупреждение.
func (h *Handlers) HandleAuthVerify(w http.ResponseWriter, r *http.Request) {
	if h.botToken == "" {
		h.writeJSON(w, http.StatusOK, verifyResponse{
			OK:      true,
			DevMode: true,
			Warning: "TELEGRAM_TOKEN not set — dev mode",
		})
		return
	}

	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.InitData == "" {
		h.writeError(w, http.StatusBadRequest, "initData required")
		return
	}

	values, err := url.ParseQuery(req.InitData)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "malformed initData")
		return
	}

	user, ok := bot.ValidateWebappRequest(values, h.botToken)
	if !ok {
		h.logger.Warn("initData verification failed")
		h.writeError(w, http.StatusUnauthorized, "initData verification failed")
		return
	}

	h.writeJSON(w, http.StatusOK, verifyResponse{OK: true, User: user})
}
