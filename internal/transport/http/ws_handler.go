package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"squarebuzz/internal/app"
	"squarebuzz/internal/domain"
	"squarebuzz/internal/game"
)

// WSHandler drives the shared-screen game over a websocket. Every
// connected screen receives the same snapshot stream; any connection may
// send host commands.
type WSHandler struct {
	service  *app.GameService
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewWSHandler(service *app.GameService, log zerolog.Logger) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type startPayload struct {
	Theme      string `json:"theme"`
	Language   string `json:"language"`
	Difficulty string `json:"difficulty"`
	Teams      int    `json:"teams"`
}

type modePayload struct {
	Mode string `json:"mode"`
}

type readyPayload struct {
	Team domain.TeamID `json:"team"`
}

type selectPayload struct {
	Option string `json:"option"`
}

type answerPayload struct {
	Text string `json:"text"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ServeWS upgrades the request and wires the connection into the game.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	updates, cancel := h.service.Subscribe()
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				h.log.Warn().Err(err).Msg("ws write error")
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case update, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: update.Event, Payload: update.View}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		if err := h.dispatch(r, inbound); err != nil {
			select {
			case send <- outboundMessage[any]{Type: "error", Payload: toErrorPayload(err)}:
			case <-closeSignals:
			}
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}

func (h *WSHandler) dispatch(r *http.Request, inbound inboundMessage) error {
	switch inbound.Type {
	case "start":
		var payload startPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return errInvalidPayload
		}
		return h.service.StartRound(r.Context(), payload.Theme, payload.Language, payload.Difficulty, payload.Teams)
	case "mode":
		var payload modePayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return errInvalidPayload
		}
		mode, ok := parseMode(payload.Mode)
		if !ok {
			return errInvalidPayload
		}
		return h.service.ChooseMode(mode)
	case "ready":
		var payload readyPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return errInvalidPayload
		}
		return h.service.ClaimReady(payload.Team)
	case "select":
		var payload selectPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return errInvalidPayload
		}
		return h.service.SelectOption(payload.Option)
	case "answer":
		var payload answerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return errInvalidPayload
		}
		return h.service.SubmitAnswer(payload.Text)
	case "reveal":
		return h.service.Reveal()
	case "next":
		return h.service.NextQuestion()
	case "new":
		return h.service.NewGame()
	default:
		return errors.New("unsupported message type")
	}
}

var errInvalidPayload = errors.New("invalid payload")

func parseMode(raw string) (game.Mode, bool) {
	switch raw {
	case "square":
		return game.ModeSquare, true
	case "buzz":
		return game.ModeBuzz, true
	default:
		return game.ModeNone, false
	}
}

// toErrorPayload attaches a stable code for the host UI to key messages on.
func toErrorPayload(err error) errorPayload {
	code := "internal"
	switch {
	case errors.Is(err, domain.ErrEmptyQuestionSet):
		code = "emptyQuestionSet"
	case errors.Is(err, domain.ErrSessionExpired):
		code = "sessionExpired"
	case errors.Is(err, domain.ErrAccessDenied):
		code = "accessDenied"
	case errors.Is(err, domain.ErrRoundNotActive):
		code = "roundNotActive"
	case errors.Is(err, domain.ErrRoundFinished):
		code = "roundFinished"
	case errors.Is(err, domain.ErrInvalidTeamCount), errors.Is(err, domain.ErrInvalidTeam):
		code = "invalidTeam"
	case errors.Is(err, domain.ErrNotClaimed):
		code = "notClaimed"
	case errors.Is(err, domain.ErrWrongState):
		code = "wrongState"
	case errors.Is(err, errInvalidPayload):
		code = "invalidPayload"
	}
	return errorPayload{Code: code, Message: err.Error()}
}
