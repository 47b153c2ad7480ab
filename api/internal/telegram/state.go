package telegram

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"hyrox-calc/api/internal/ocr"
	"hyrox-calc/api/internal/workout"
)

// chatState is one chat's calculator sheet plus the last model answer.
type chatState struct {
	sheet *workout.Sheet

	mu      sync.Mutex
	lastRaw string
}

func (r *Router) state(chatID int64) *chatState {
	r.chatsMu.Lock()
	defer r.chatsMu.Unlock()

	if r.chats == nil {
		size := r.MaxChats
		if size <= 0 {
			size = defaultMaxChats
		}
		r.chats, _ = lru.New[int64, *chatState](size)
	}
	if st, ok := r.chats.Get(chatID); ok {
		return st
	}
	st := &chatState{sheet: workout.NewSheet()}
	r.chats.Add(chatID, st)
	return st
}

func (st *chatState) apply(x ocr.Extraction) {
	x.ApplyTo(st.sheet)
	st.mu.Lock()
	st.lastRaw = x.RawText
	st.mu.Unlock()
}

func (st *chatState) reset() {
	st.sheet.Reset()
	st.mu.Lock()
	st.lastRaw = ""
	st.mu.Unlock()
}

func (st *chatState) raw() string {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.lastRaw
}

func (st *chatState) hasRaw() bool { return st.raw() != "" }

// set updates one field by its short name: run3, a station key or its label
// without spaces (ski, sledpush, wallballs), or roxzone.
func (st *chatState) set(field, value string) error {
	if strings.EqualFold(field, "roxzone") {
		return st.sheet.SetRoxzone(value)
	}
	id, err := entryID(field)
	if err != nil {
		return err
	}
	return st.sheet.SetTime(id, value)
}

func entryID(field string) (string, error) {
	f := strings.ToLower(field)
	for _, prefix := range []string{"running", "run", "r"} {
		if rest, ok := strings.CutPrefix(f, prefix); ok {
			if n, err := strconv.Atoi(rest); err == nil && n >= 1 {
				return "running-" + strconv.Itoa(n), nil
			}
		}
	}
	for _, s := range workout.Stations {
		label := strings.ToLower(strings.ReplaceAll(s.Label(), " ", ""))
		if f == strings.ToLower(string(s)) || f == label {
			return "station-" + string(s), nil
		}
	}
	return "", fmt.Errorf("unknown field %q", field)
}
