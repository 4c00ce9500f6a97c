// Mock upstream content/profile API for local development. Stateful and
// in-memory: engagement toggles, votes and acceptance behave like the real
// server, including the invariants it arbitrates (one vote per user per
// answer, one accepted answer per question).
package main

import (
	_ "embed"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

//go:embed data.json
var seedData []byte

type vote struct {
	UserID   string `json:"userId"`
	VoteType string `json:"voteType"`
}

type comment struct {
	UserID         string `json:"userId"`
	Text           string `json:"text"`
	CreatedAt      string `json:"createdAt"`
	IsAnswer       bool   `json:"isAnswer"`
	AcceptedAnswer bool   `json:"acceptedAnswer"`
	Votes          int    `json:"votes"`
	VotedBy        []vote `json:"votedBy"`
}

type content struct {
	ID          string         `json:"id"`
	ContentType string         `json:"contentType"`
	UserID      string         `json:"userId"`
	Likes       []string       `json:"likes"`
	Saves       []string       `json:"saves"`
	Reposts     []string       `json:"reposts"`
	Comments    []comment      `json:"comments"`
	Solved      bool           `json:"solved"`
	IsPublic    bool           `json:"isPublic"`
	ExtraFields map[string]any `json:"extraFields"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Image       string         `json:"image"`
	CreatedAt   string         `json:"createdAt"`
	UpdatedAt   string         `json:"updatedAt"`
}

type user struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type profile struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	IsPublic  bool           `json:"isPublic"`
	Fields    map[string]any `json:"fields"`
	UpdatedAt string         `json:"updatedAt"`
}

type seed struct {
	Contents []*content `json:"contents"`
	Users    []user     `json:"users"`
	Profiles []*profile `json:"profiles"`
}

type store struct {
	mu       sync.Mutex
	contents []*content
	users    []user
	profiles map[string]*profile // by userId
}

func newStore() *store {
	var s seed
	if err := json.Unmarshal(seedData, &s); err != nil {
		log.Fatalf("[Upstream] bad seed data: %v", err)
	}

	profiles := make(map[string]*profile)
	for _, p := range s.Profiles {
		profiles[p.UserID] = p
	}

	return &store{contents: s.Contents, users: s.Users, profiles: profiles}
}

func (s *store) find(id string) *content {
	for _, c := range s.contents {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[Upstream] write error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func actingUser(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}

func toggle(set []string, userID string, add bool) []string {
	out := make([]string, 0, len(set)+1)
	for _, id := range set {
		if id != userID {
			out = append(out, id)
		}
	}
	if add {
		out = append(out, userID)
	}
	return out
}

func main() {
	s := newStore()
	mux := http.NewServeMux()

	mux.HandleFunc("GET /contents", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = 10
		}
		kind := r.URL.Query().Get("contentType")

		matched := make([]content, 0, len(s.contents))
		for _, c := range s.contents {
			if kind == "" || c.ContentType == kind {
				matched = append(matched, *c)
			}
		}

		total := len(matched)
		pages := (total + limit - 1) / limit
		start := (page - 1) * limit
		if start > total {
			start = total
		}
		end := start + limit
		if end > total {
			end = total
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"contents": matched[start:end],
			"pagination": map[string]int{
				"total": total,
				"pages": pages,
			},
		})
	})

	mux.HandleFunc("GET /contents/search", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		q := strings.ToLower(r.URL.Query().Get("q"))
		results := make([]content, 0)
		for _, c := range s.contents {
			if q != "" && (strings.Contains(strings.ToLower(c.Title), q) ||
				strings.Contains(strings.ToLower(c.Description), q)) {
				results = append(results, *c)
			}
		}

		writeJSON(w, http.StatusOK, map[string]any{"results": results})
	})

	mux.HandleFunc("GET /contents/{id}", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		c := s.find(r.PathValue("id"))
		if c == nil {
			writeError(w, http.StatusNotFound, "content not found")
			return
		}

		writeJSON(w, http.StatusOK, c)
	})

	mux.HandleFunc("DELETE /contents/{id}", func(w http.ResponseWriter, r *http.Request) {
		userID := actingUser(r)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		c := s.find(r.PathValue("id"))
		if c == nil {
			writeError(w, http.StatusNotFound, "content not found")
			return
		}
		if c.UserID != userID {
			writeError(w, http.StatusForbidden, "not the owner")
			return
		}

		kept := s.contents[:0]
		for _, existing := range s.contents {
			if existing.ID != c.ID {
				kept = append(kept, existing)
			}
		}
		s.contents = kept

		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("POST /contents/{id}/actions/{action}", func(w http.ResponseWriter, r *http.Request) {
		userID := actingUser(r)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		c := s.find(r.PathValue("id"))
		if c == nil {
			writeError(w, http.StatusNotFound, "content not found")
			return
		}

		switch r.PathValue("action") {
		case "like":
			c.Likes = toggle(c.Likes, userID, true)
		case "unlike":
			c.Likes = toggle(c.Likes, userID, false)
		case "save":
			c.Saves = toggle(c.Saves, userID, true)
		case "unsave":
			c.Saves = toggle(c.Saves, userID, false)
		case "repost":
			c.Reposts = toggle(c.Reposts, userID, true)
		default:
			writeError(w, http.StatusNotFound, "unknown action")
			return
		}

		c.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		writeJSON(w, http.StatusOK, c)
	})

	postComment := func(isAnswer bool) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			userID := actingUser(r)
			if userID == "" {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			var body struct {
				Text string `json:"text"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Text == "" {
				writeError(w, http.StatusBadRequest, "text is required")
				return
			}

			s.mu.Lock()
			defer s.mu.Unlock()

			c := s.find(r.PathValue("id"))
			if c == nil {
				writeError(w, http.StatusNotFound, "content not found")
				return
			}
			if isAnswer && c.ContentType != "question" {
				writeError(w, http.StatusUnprocessableEntity, "answers require question content")
				return
			}

			c.Comments = append(c.Comments, comment{
				UserID:    userID,
				Text:      body.Text,
				CreatedAt: time.Now().UTC().Format(time.RFC3339),
				IsAnswer:  isAnswer,
				VotedBy:   []vote{},
			})
			c.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

			writeJSON(w, http.StatusOK, c)
		}
	}

	mux.HandleFunc("POST /contents/{id}/comments", postComment(false))
	mux.HandleFunc("POST /contents/{id}/answers", postComment(true))

	answerAt := func(w http.ResponseWriter, r *http.Request) (*content, int, bool) {
		c := s.find(r.PathValue("id"))
		if c == nil {
			writeError(w, http.StatusNotFound, "content not found")
			return nil, 0, false
		}

		index, err := strconv.Atoi(r.PathValue("index"))
		if err != nil || index < 0 || index >= len(c.Comments) || !c.Comments[index].IsAnswer {
			writeError(w, http.StatusNotFound, "no answer at index")
			return nil, 0, false
		}

		return c, index, true
	}

	mux.HandleFunc("POST /contents/{id}/answers/{index}/vote", func(w http.ResponseWriter, r *http.Request) {
		userID := actingUser(r)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		var body struct {
			Direction string `json:"direction"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil ||
			(body.Direction != "up" && body.Direction != "down") {
			writeError(w, http.StatusBadRequest, "direction must be up or down")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		c, index, ok := answerAt(w, r)
		if !ok {
			return
		}

		// One vote entry per user; changing direction overwrites it.
		answer := &c.Comments[index]
		kept := answer.VotedBy[:0]
		for _, v := range answer.VotedBy {
			if v.UserID != userID {
				kept = append(kept, v)
			}
		}
		answer.VotedBy = append(kept, vote{UserID: userID, VoteType: body.Direction})

		tally := 0
		for _, v := range answer.VotedBy {
			if v.VoteType == "up" {
				tally++
			} else {
				tally--
			}
		}
		answer.Votes = tally
		c.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

		writeJSON(w, http.StatusOK, c)
	})

	mux.HandleFunc("POST /contents/{id}/answers/{index}/accept", func(w http.ResponseWriter, r *http.Request) {
		userID := actingUser(r)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		c, index, ok := answerAt(w, r)
		if !ok {
			return
		}
		if c.UserID != userID {
			writeError(w, http.StatusForbidden, "only the question owner accepts answers")
			return
		}
		if c.Solved {
			writeError(w, http.StatusUnprocessableEntity, "question already solved")
			return
		}

		// At most one accepted answer per question.
		for i := range c.Comments {
			c.Comments[i].AcceptedAnswer = false
		}
		c.Comments[index].AcceptedAnswer = true
		c.Solved = true
		c.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

		writeJSON(w, http.StatusOK, c)
	})

	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		writeJSON(w, http.StatusOK, map[string]any{"users": s.users})
	})

	mux.HandleFunc("GET /cv-profile", func(w http.ResponseWriter, r *http.Request) {
		userID := actingUser(r)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		p, ok := s.profiles[userID]
		if !ok {
			writeError(w, http.StatusNotFound, "no profile yet")
			return
		}

		writeJSON(w, http.StatusOK, p)
	})

	mux.HandleFunc("GET /cv-profile/public/{id}", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		for _, p := range s.profiles {
			if p.ID == r.PathValue("id") && p.IsPublic {
				writeJSON(w, http.StatusOK, p)
				return
			}
		}

		writeError(w, http.StatusNotFound, "profile not found")
	})

	mux.HandleFunc("GET /cv-profile/{id}", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		for _, p := range s.profiles {
			if p.ID == r.PathValue("id") {
				writeJSON(w, http.StatusOK, p)
				return
			}
		}

		writeError(w, http.StatusNotFound, "profile not found")
	})

	mux.HandleFunc("PUT /cv-profile", func(w http.ResponseWriter, r *http.Request) {
		userID := actingUser(r)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		var body profile
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid profile body")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		existing, ok := s.profiles[userID]
		if !ok {
			existing = &profile{ID: "profile-" + userID, UserID: userID}
			s.profiles[userID] = existing
		}
		existing.IsPublic = body.IsPublic
		existing.Fields = body.Fields
		existing.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

		writeJSON(w, http.StatusOK, existing)
	})

	mux.HandleFunc("DELETE /cv-profile", func(w http.ResponseWriter, r *http.Request) {
		userID := actingUser(r)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		delete(s.profiles, userID)
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	log.Println("Mock upstream API running on :8081")
	server := &http.Server{
		Addr:         ":8081",
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
