package storage

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestDiskStore_SaveAndOpen(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	ctx := context.Background()

	path, err := store.Save(ctx, "tenant-a", "quality policy.pdf", strings.NewReader("policy content"))
	if err != nil {
		t.Fatalf("Failed to save file: %v", err)
	}

	if !strings.HasPrefix(path, "tenant-a") {
		t.Errorf("Expected stored path under tenant directory, got %s", path)
	}
	if strings.Contains(path, " ") {
		t.Errorf("Expected sanitized filename, got %s", path)
	}

	f, err := store.Open(ctx, "tenant-a", path)
	if err != nil {
		t.Fatalf("Failed to open file: %v", err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != "policy content" {
		t.Errorf("Expected 'policy content', got %q", content)
	}
}

func TestDiskStore_OpenOtherTenantPath(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	ctx := context.Background()

	path, err := store.Save(ctx, "tenant-a", "secret.pdf", strings.NewReader("secret"))
	if err != nil {
		t.Fatalf("Failed to save file: %v", err)
	}

	if _, err := store.Open(ctx, "tenant-b", path); err == nil {
		t.Error("Expected error opening another tenant's file")
	}
}

func TestDiskStore_OpenPathTraversal(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if _, err := store.Open(context.Background(), "tenant-a", "../../../etc/passwd"); err == nil {
		t.Error("Expected error for path escaping tenant storage")
	}
}

func TestDiskStore_Remove(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	ctx := context.Background()

	path, err := store.Save(ctx, "tenant-a", "temp.txt", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Failed to save file: %v", err)
	}

	if err := store.Remove(ctx, "tenant-a", path); err != nil {
		t.Fatalf("Failed to remove file: %v", err)
	}

	if _, err := store.Open(ctx, "tenant-a", path); err == nil {
		t.Error("Expected error opening removed file")
	}
}
