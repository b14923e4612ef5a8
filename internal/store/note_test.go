package store

import (
	"errors"
	"testing"

	"gorm.io/gorm"
)

func TestCreateNote_DefaultCategory(t *testing.T) {
	st := openTestStore(t)
	uid := seedUser(t, st, "alice")

	note, err := st.CreateNote(uid, "remember this", "")
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	if note.Category != "GENERAL" {
		t.Errorf("category = %q, want GENERAL", note.Category)
	}
}

func TestCreateNote_KeepsCategory(t *testing.T) {
	st := openTestStore(t)
	uid := seedUser(t, st, "alice")

	note, err := st.CreateNote(uid, "call plumber", "HOME")
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	if note.Category != "HOME" {
		t.Errorf("category = %q, want HOME", note.Category)
	}
}

func TestCreateNote_EmptyText(t *testing.T) {
	st := openTestStore(t)
	uid := seedUser(t, st, "alice")

	if _, err := st.CreateNote(uid, "", "GENERAL"); err == nil {
		t.Error("empty note text accepted")
	}
}

func TestDeleteNote_WrongOwner(t *testing.T) {
	st := openTestStore(t)
	alice := seedUser(t, st, "alice")
	bob := seedUser(t, st, "bob")
	note, _ := st.CreateNote(alice, "private", "")

	err := st.DeleteNote(note.ID, bob)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("err = %v, want not found", err)
	}
	notes, _ := st.Notes(alice)
	if len(notes) != 1 {
		t.Errorf("notes = %+v, want survivor", notes)
	}
}

func TestDeleteNote(t *testing.T) {
	st := openTestStore(t)
	uid := seedUser(t, st, "alice")
	note, _ := st.CreateNote(uid, "x", "")

	if err := st.DeleteNote(note.ID, uid); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}
	notes, _ := st.Notes(uid)
	if len(notes) != 0 {
		t.Errorf("notes = %+v, want empty", notes)
	}
}
