package cardpress

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newRelay serves the /auth credential endpoint.
func newRelay(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

const goodAuth = `{"signature":"sig123","token":"tok456","expire":1900000000}`

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"complete", Config{BaseURL: "http://relay", PublicKey: "pk"}, true},
		{"missing base URL", Config{PublicKey: "pk"}, false},
		{"missing public key", Config{BaseURL: "http://relay"}, false},
		{"missing both", Config{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok {
				if !errors.Is(err, ErrConfigurationMissing) {
					t.Errorf("got %v, want ErrConfigurationMissing", err)
				}
			}
		})
	}
}

func TestFetchAuth(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		relay := newRelay(t, http.StatusOK, goodAuth)
		c := NewUploadClient(Config{BaseURL: relay.URL, PublicKey: "pk"})
		auth, err := c.FetchAuth(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if auth.Signature != "sig123" || auth.Token != "tok456" || auth.Expire != 1900000000 {
			t.Errorf("unexpected auth payload: %+v", auth)
		}
	})

	t.Run("non-2xx means auth unavailable", func(t *testing.T) {
		relay := newRelay(t, http.StatusBadGateway, "oops")
		c := NewUploadClient(Config{BaseURL: relay.URL, PublicKey: "pk"})
		if _, err := c.FetchAuth(context.Background()); !errors.Is(err, ErrAuthUnavailable) {
			t.Errorf("got %v, want ErrAuthUnavailable", err)
		}
	})
}

func TestUploadImageSubmitsMultipart(t *testing.T) {
	relay := newRelay(t, http.StatusOK, goodAuth)

	var gotFields map[string]string
	var gotFile string
	upload := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("not a multipart request: %v", err)
		}
		gotFields = map[string]string{}
		for k := range r.MultipartForm.Value {
			gotFields[k] = r.FormValue(k)
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing file part: %v", err)
		} else {
			data, _ := io.ReadAll(file)
			gotFile = string(data)
		}
		io.WriteString(w, `{"url":"https://img.example/cards/photo_1.jpg"}`)
	}))
	defer upload.Close()

	c := NewUploadClient(Config{BaseURL: relay.URL, PublicKey: "pk-live", UploadURL: upload.URL})
	res, err := c.UploadImage(context.Background(), "photo.jpg", strings.NewReader("jpegbytes"))
	if err != nil {
		t.Fatal(err)
	}
	if res.URL != "https://img.example/cards/photo_1.jpg" {
		t.Errorf("url = %q", res.URL)
	}
	if gotFile != "jpegbytes" {
		t.Errorf("file content = %q", gotFile)
	}
	for k, want := range map[string]string{
		"fileName":          "photo.jpg",
		"publicKey":         "pk-live",
		"signature":         "sig123",
		"token":             "tok456",
		"expire":            "1900000000",
		"folder":            uploadFolder,
		"useUniqueFileName": "true",
	} {
		if gotFields[k] != want {
			t.Errorf("field %s = %q, want %q", k, gotFields[k], want)
		}
	}
}

func TestUploadImageRejection(t *testing.T) {
	relay := newRelay(t, http.StatusOK, goodAuth)

	t.Run("error payload message is surfaced", func(t *testing.T) {
		upload := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"message":"Your account cannot be authenticated."}`)
		}))
		defer upload.Close()
		c := NewUploadClient(Config{BaseURL: relay.URL, PublicKey: "pk", UploadURL: upload.URL})
		_, err := c.UploadImage(context.Background(), "photo.jpg", strings.NewReader("x"))
		if !errors.Is(err, ErrUploadRejected) {
			t.Fatalf("got %v, want ErrUploadRejected", err)
		}
		if !strings.Contains(err.Error(), "Your account cannot be authenticated.") {
			t.Errorf("error %q does not carry the service message", err)
		}
	})

	t.Run("non-2xx without payload uses the status", func(t *testing.T) {
		upload := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer upload.Close()
		c := NewUploadClient(Config{BaseURL: relay.URL, PublicKey: "pk", UploadURL: upload.URL})
		_, err := c.UploadImage(context.Background(), "photo.jpg", strings.NewReader("x"))
		if !errors.Is(err, ErrUploadRejected) {
			t.Fatalf("got %v, want ErrUploadRejected", err)
		}
	})
}

func TestUploadToSlot(t *testing.T) {
	t.Run("failure leaves the slot as it was", func(t *testing.T) {
		relay := newRelay(t, http.StatusOK, goodAuth)
		upload := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"message":"File size too large."}`)
		}))
		defer upload.Close()

		s := NewStore(StoreOptions{})
		c := NewUploadClient(Config{BaseURL: relay.URL, PublicKey: "pk", UploadURL: upload.URL})
		err := UploadToSlot(context.Background(), s, c, 0, "big.jpg", "image/jpeg", 999, strings.NewReader("x"))
		if !errors.Is(err, ErrUploadRejected) {
			t.Fatalf("got %v, want ErrUploadRejected", err)
		}
		snap := s.Snapshot()
		if !snap.Slots[0].Empty() {
			t.Error("failed upload filled the slot")
		}
		if snap.Slots[0].Uploading {
			t.Error("uploading flag did not return to false")
		}
		if !strings.Contains(s.Status(), "File size too large.") {
			t.Errorf("status = %q, want the service's message", s.Status())
		}
	})

	t.Run("success fills the slot", func(t *testing.T) {
		relay := newRelay(t, http.StatusOK, goodAuth)
		upload := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"url":"https://img.example/cards/sunny.jpg"}`)
		}))
		defer upload.Close()

		s := NewStore(StoreOptions{})
		c := NewUploadClient(Config{BaseURL: relay.URL, PublicKey: "pk", UploadURL: upload.URL})
		if err := UploadToSlot(context.Background(), s, c, 0, "sunny.jpg", "image/jpeg", 12345, strings.NewReader("x")); err != nil {
			t.Fatal(err)
		}
		slot := s.Snapshot().Slots[0]
		if slot.SourceURL != "https://img.example/cards/sunny.jpg" {
			t.Errorf("slot url = %q", slot.SourceURL)
		}
		if slot.OriginalName != "sunny.jpg" || slot.ByteSize != 12345 || slot.MimeType != "image/jpeg" {
			t.Errorf("provenance metadata not stored: %+v", slot)
		}
	})

	t.Run("refuses to start without configuration", func(t *testing.T) {
		s := NewStore(StoreOptions{})
		c := NewUploadClient(Config{})
		err := UploadToSlot(context.Background(), s, c, 0, "a.jpg", "image/jpeg", 1, strings.NewReader("x"))
		if !errors.Is(err, ErrConfigurationMissing) {
			t.Fatalf("got %v, want ErrConfigurationMissing", err)
		}
		if s.Snapshot().Slots[0].Uploading {
			t.Error("slot marked uploading despite refusal")
		}
	})

	t.Run("auth unavailable surfaces before any upload", func(t *testing.T) {
		relay := newRelay(t, http.StatusServiceUnavailable, "")
		upload := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("upload service should never be reached without credentials")
		}))
		defer upload.Close()

		s := NewStore(StoreOptions{})
		c := NewUploadClient(Config{BaseURL: relay.URL, PublicKey: "pk", UploadURL: upload.URL})
		err := UploadToSlot(context.Background(), s, c, 0, "a.jpg", "image/jpeg", 1, strings.NewReader("x"))
		if !errors.Is(err, ErrAuthUnavailable) {
			t.Fatalf("got %v, want ErrAuthUnavailable", err)
		}
		if s.Snapshot().Slots[0].Uploading {
			t.Error("uploading flag stuck after auth failure")
		}
	})
}
