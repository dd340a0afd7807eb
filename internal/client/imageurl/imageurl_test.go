package imageurl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolver_URL(t *testing.T) {
	r := New("https://vibecart-backend.onrender.com", "", "")

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"empty", "", "https://via.placeholder.com/300"},
		{"data uri", "data:image/png;base64,AAA", "data:image/png;base64,AAA"},
		{"legacy host", "http://localhost:5000/uploads/a.jpg", "https://vibecart-backend.onrender.com/uploads/a.jpg"},
		{"other absolute", "https://cdn.example.com/x.png", "https://cdn.example.com/x.png"},
		{"rooted path", "/uploads/b.png", "https://vibecart-backend.onrender.com/uploads/b.png"},
		{"bare path", "uploads/c.png", "https://vibecart-backend.onrender.com/uploads/c.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.URL(tt.ref))
		})
	}
}

func TestResolver_CustomOrigin(t *testing.T) {
	r := New("http://api.local:8080/", "http://old:1", "about:blank")

	assert.Equal(t, "about:blank", r.URL(""))
	assert.Equal(t, "http://api.local:8080/p.png", r.URL("/p.png"))
	assert.Equal(t, "http://api.local:8080/p.png", r.URL("http://old:1/p.png"))
}
