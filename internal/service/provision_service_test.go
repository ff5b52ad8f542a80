package service

import (
	"context"
	"testing"
)

func TestEnsureUser(t *testing.T) {
	store := newTestStore(t)
	svc := NewProvisionService(store)
	ctx := context.Background()

	created, err := svc.EnsureUser(ctx, 42, "alice", "Alice")
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	if created.ID != 42 || created.Username != "alice" {
		t.Errorf("created user = %+v", created)
	}

	// Seen again with the same fields: no change.
	again, err := svc.EnsureUser(ctx, 42, "alice", "Alice")
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	if again.Username != "alice" || again.FirstName != "Alice" {
		t.Errorf("unchanged user = %+v", again)
	}

	// A renamed member gets refreshed.
	renamed, err := svc.EnsureUser(ctx, 42, "alice_v2", "")
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	if renamed.Username != "alice_v2" {
		t.Errorf("username = %q, want alice_v2", renamed.Username)
	}
	// Empty incoming first name did not erase the stored one.
	if renamed.FirstName != "Alice" {
		t.Errorf("first name = %q, want Alice", renamed.FirstName)
	}

	stored, err := store.GetUser(ctx, 42)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if stored.Username != "alice_v2" || stored.FirstName != "Alice" {
		t.Errorf("stored user = %+v", stored)
	}
}

func TestEnsureChat(t *testing.T) {
	store := newTestStore(t)
	svc := NewProvisionService(store)
	ctx := context.Background()

	chat, err := svc.EnsureChat(ctx, -100200, "Trip 2026")
	if err != nil {
		t.Fatalf("EnsureChat failed: %v", err)
	}
	if chat.ID != -100200 || chat.Title != "Trip 2026" {
		t.Errorf("created chat = %+v", chat)
	}

	// An empty title never erases the stored one.
	same, err := svc.EnsureChat(ctx, -100200, "")
	if err != nil {
		t.Fatalf("EnsureChat failed: %v", err)
	}
	if same.Title != "Trip 2026" {
		t.Errorf("title = %q, want Trip 2026", same.Title)
	}

	retitled, err := svc.EnsureChat(ctx, -100200, "Trip 2027")
	if err != nil {
		t.Fatalf("EnsureChat failed: %v", err)
	}
	if retitled.Title != "Trip 2027" {
		t.Errorf("title = %q, want Trip 2027", retitled.Title)
	}
}
