package recommendation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSuggestTherapyKnownSymptoms(t *testing.T) {
	cases := map[string]string{
		"back pain":        "Chiropractic",
		"stress":           "Acupuncture",
		"anxiety":          "Ayurveda",
		"muscle pain":      "Physiotherapy",
		"headache":         "Acupuncture",
		"joint pain":       "Physiotherapy",
		"insomnia":         "Ayurveda",
		"digestive issues": "Ayurveda",
	}
	for symptom, want := range cases {
		if got := suggestTherapy(symptom); got != want {
			t.Errorf("suggestTherapy(%q) = %q, want %q", symptom, got, want)
		}
	}
}

func TestSuggestTherapyNormalizesInput(t *testing.T) {
	if got := suggestTherapy("  Back Pain "); got != "Chiropractic" {
		t.Fatalf("suggestTherapy() = %q, want Chiropractic", got)
	}
}

func TestSuggestTherapyUnknownSymptomFallsBack(t *testing.T) {
	if got := suggestTherapy("hiccups"); got != defaultTherapy {
		t.Fatalf("suggestTherapy() = %q, want %q", got, defaultTherapy)
	}
}

func TestCreateRecommendationRequiresSymptom(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/recommendations", CreateRecommendation)

	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("code = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
