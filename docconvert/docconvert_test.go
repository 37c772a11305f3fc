package docconvert

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestDocling_Convert(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1alpha/convert/file" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("request is not multipart: %v", err)
		}
		if _, _, err := r.FormFile("files"); err != nil {
			t.Errorf("request has no files part: %v", err)
		}
		fmt.Fprint(w, `{"status":"success","document":{"md_content":"# statement\n"}}`)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "statement.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 fake"), 0644); err != nil {
		t.Fatal(err)
	}

	d := &Docling{Addr: srv.URL}
	md, err := d.Convert(context.Background(), path)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if md != "# statement\n" {
		t.Errorf("Convert() = %q, want the md_content", md)
	}
}

func TestDocling_Convert_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "statement.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 fake"), 0644); err != nil {
		t.Fatal(err)
	}

	d := &Docling{Addr: srv.URL}
	if _, err := d.Convert(context.Background(), path); err == nil {
		t.Fatal("Convert() must surface the server error")
	}
}

func TestDocling_Convert_MissingFile(t *testing.T) {
	d := &Docling{Addr: "http://localhost:0"}
	if _, err := d.Convert(context.Background(), "/does/not/exist.pdf"); err == nil {
		t.Fatal("Convert() must fail on an unreadable statement")
	}
}
