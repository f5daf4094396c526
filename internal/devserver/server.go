// Package devserver is an in-process reference backend: the REST surface and
// room-scoped push fanout the client expects, with in-memory history. It
// exists so the terminal client runs end-to-end and transport tests hit a
// real socket instead of hand-rolled fakes.
package devserver

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"collabchat/internal/common"
	"collabchat/internal/event"
	"collabchat/internal/message"
)

const defaultMaxUploadBytes = 10 << 20

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Server struct {
	hub            *Hub
	maxUploadBytes int64

	mu       sync.Mutex
	byID     map[string]*message.Message
	history  map[string][]*message.Message // channel id -> ordered messages
	nextID   int
	reported map[string][]string // message id -> reasons
}

// New builds a server. maxUploadBytes caps a single attachment; zero means
// the default.
func New(maxUploadBytes int64) *Server {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Server{
		hub:            NewHub(),
		maxUploadBytes: maxUploadBytes,
		byID:           make(map[string]*message.Message),
		history:        make(map[string][]*message.Message),
		reported:       make(map[string][]string),
	}
}

func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/login", s.login).Methods("POST")
	r.HandleFunc("/ws", s.websocketHandler)

	api := r.NewRoute().Subrouter()
	api.Use(s.authMiddleware)
	api.HandleFunc("/channels/{channelId}/messages", s.historyHandler).Methods("GET")
	api.HandleFunc("/channels/{channelId}/messages", s.sendHandler).Methods("POST")
	api.HandleFunc("/channels/{channelId}/uploads", s.uploadHandler).Methods("POST")
	api.HandleFunc("/messages/{id}", s.editHandler).Methods("PUT")
	api.HandleFunc("/messages/{id}", s.deleteHandler).Methods("DELETE")
	api.HandleFunc("/messages/{id}/reactions", s.reactionHandler).Methods("POST")
	api.HandleFunc("/messages/{id}/votes", s.voteHandler).Methods("POST")
	api.HandleFunc("/messages/{id}/star", s.starHandler).Methods("PUT")
	api.HandleFunc("/messages/{id}/reports", s.reportHandler).Methods("POST")
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")
	return r
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ActorID string `json:"actor_id"`
		Name    string `json:"name"`
		Role    string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ActorID == "" {
		http.Error(w, "actor_id is required", http.StatusBadRequest)
		return
	}
	if req.Role == "" {
		req.Role = string(common.RoleMember)
	}
	token, err := common.GenerateToken(common.Actor{
		ID: req.ActorID, Name: req.Name, Role: common.Role(req.Role),
	})
	if err != nil {
		http.Error(w, "token generation failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"token": token})
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := s.authenticate(r)
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		r.Header.Set("X-Actor-ID", claims.ActorID)
		r.Header.Set("X-Actor-Name", claims.Name)
		r.Header.Set("X-Actor-Role", claims.Role)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(r *http.Request) (*common.Claims, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, fmt.Errorf("missing bearer token")
	}
	return common.ValidToken(strings.TrimPrefix(header, "Bearer "))
}

func (s *Server) historyHandler(w http.ResponseWriter, r *http.Request) {
	channelID := mux.Vars(r)["channelId"]
	s.mu.Lock()
	msgs := make([]*message.Message, len(s.history[channelID]))
	for i, m := range s.history[channelID] {
		msgs[i] = m.Clone()
	}
	s.mu.Unlock()
	writeJSON(w, msgs)
}

func (s *Server) sendHandler(w http.ResponseWriter, r *http.Request) {
	channelID := mux.Vars(r)["channelId"]
	var req struct {
		Kind       message.Kind        `json:"kind"`
		Body       string              `json:"body"`
		ReplyTo    *message.ReplyRef   `json:"reply_to"`
		Poll       *message.Poll       `json:"poll"`
		Attachment *message.Attachment `json:"attachment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Body) == "" && req.Poll == nil {
		http.Error(w, "body cannot be empty", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.nextID++
	m := &message.Message{
		ID:         fmt.Sprintf("m-%d", s.nextID),
		ChannelID:  channelID,
		AuthorID:   r.Header.Get("X-Actor-ID"),
		AuthorName: r.Header.Get("X-Actor-Name"),
		Kind:       req.Kind,
		Body:       req.Body,
		CreatedAt:  time.Now(),
		Status:     message.StatusDelivered,
		ReplyTo:    req.ReplyTo,
		Poll:       req.Poll,
		Attachment: req.Attachment,
	}
	if m.Kind == "" {
		m.Kind = message.KindPlain
	}
	s.history[channelID] = append(s.history[channelID], m)
	s.byID[m.ID] = m
	confirmed := m.Clone()
	s.mu.Unlock()

	s.hub.Broadcast(event.NewMessage{ChannelID: channelID, Message: *confirmed})
	writeJSON(w, confirmed)
}

func (s *Server) editHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Body) == "" {
		http.Error(w, "body cannot be empty", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	m, ok := s.byID[id]
	var edited *message.Message
	if ok {
		m.Body = req.Body
		m.Edited = true
		edited = m.Clone()
	}
	s.mu.Unlock()
	if !ok {
		http.Error(w, "message not found", http.StatusNotFound)
		return
	}
	s.hub.Broadcast(event.Edited{ChannelID: edited.ChannelID, ID: id, Body: req.Body})
	writeJSON(w, edited)
}

func (s *Server) deleteHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	m, ok := s.byID[id]
	if ok {
		delete(s.byID, id)
		seq := s.history[m.ChannelID]
		for i, entry := range seq {
			if entry.ID == id {
				s.history[m.ChannelID] = append(seq[:i], seq[i+1:]...)
				break
			}
		}
	}
	s.mu.Unlock()
	if !ok {
		http.Error(w, "message not found", http.StatusNotFound)
		return
	}
	s.hub.Broadcast(event.Deleted{ChannelID: m.ChannelID, ID: id})
	w.WriteHeader(http.StatusOK)
}

func (s *Server) reactionHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req struct {
		Emoji string `json:"emoji"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Emoji == "" {
		http.Error(w, "emoji is required", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	m, ok := s.byID[id]
	if ok {
		m.ToggleReaction(req.Emoji, r.Header.Get("X-Actor-ID"))
	}
	s.mu.Unlock()
	if !ok {
		http.Error(w, "message not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) voteHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req struct {
		OptionIDs []int `json:"option_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.OptionIDs) == 0 {
		http.Error(w, "option_ids is required", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.byID[id]
	if !ok || m.Poll == nil {
		http.Error(w, "poll not found", http.StatusNotFound)
		return
	}
	if err := m.Poll.Record(r.Header.Get("X-Actor-ID"), req.OptionIDs); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) starHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req struct {
		Starred bool `json:"starred"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	m, ok := s.byID[id]
	if ok {
		m.Starred = req.Starred
	}
	s.mu.Unlock()
	if !ok {
		http.Error(w, "message not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) reportHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	_, ok := s.byID[id]
	if ok {
		s.reported[id] = append(s.reported[id], req.Reason)
	}
	s.mu.Unlock()
	if !ok {
		http.Error(w, "message not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) uploadHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		http.Error(w, "file too large", http.StatusRequestEntityTooLarge)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()
	if header.Size > s.maxUploadBytes {
		http.Error(w, "file too large", http.StatusRequestEntityTooLarge)
		return
	}
	kind, ok := attachmentKind(header.Filename)
	if !ok {
		http.Error(w, "unsupported file type", http.StatusUnsupportedMediaType)
		return
	}
	// The reference backend discards the bytes; only the URL contract
	// matters to the client.
	if _, err := io.Copy(io.Discard, file); err != nil {
		http.Error(w, "read failed", http.StatusInternalServerError)
		return
	}
	channelID := mux.Vars(r)["channelId"]
	writeJSON(w, message.Attachment{
		URL:  fmt.Sprintf("/files/%s/%s", channelID, header.Filename),
		Kind: kind,
	})
}

func attachmentKind(filename string) (message.AttachmentKind, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return message.AttachmentImage, true
	case ".mp3", ".ogg", ".wav", ".m4a":
		return message.AttachmentAudio, true
	case ".pdf", ".txt", ".md", ".doc", ".docx":
		return message.AttachmentDocument, true
	default:
		return "", false
	}
}

func (s *Server) websocketHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := s.authenticate(r); err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}
	c := &client{conn: conn, rooms: make(map[string]bool)}
	s.hub.register(c)
	defer func() {
		s.hub.unregister(c)
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		ev, err := event.Decode(data)
		if err != nil {
			log.Printf("dropping client frame: %v", err)
			continue
		}
		switch e := ev.(type) {
		case event.RoomControl:
			if e.Action == event.TagJoinRoom {
				c.join(e.ChannelID)
			} else {
				c.leave(e.ChannelID)
			}
		case event.Typing:
			s.hub.Broadcast(e)
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}
