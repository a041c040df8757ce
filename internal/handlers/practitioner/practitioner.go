package practitioner

import (
	"errors"
	"log"
	"net/http"
	"time"

	"wellnexus_back_end/internal/database"
	"wellnexus_back_end/internal/models"
	"wellnexus_back_end/internal/service"
	"wellnexus_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

const profileColumns = `practitioner_id, user_id, name, specialization, bio, consultation_fee, start_hour, end_hour, verified, document_urls, created_at`

// GET /api/practitioners
//
// Patients only ever see verified profiles.
func GetPractitioners(c *gin.Context) {
	profiles, err := listProfiles(c, true)
	if err != nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{"practitioners": profiles})
}

// GET /api/practitioners/pending  (admin)
func GetPendingPractitioners(c *gin.Context) {
	profiles, err := listProfiles(c, false)
	if err != nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{"practitioners": profiles})
}

// GET /api/practitioners/:id
func GetPractitionerByID(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid practitioner id"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}

	var p models.PractitionerProfile
	if err := session.Query(`SELECT `+profileColumns+` FROM practitioner_profiles
	                         WHERE practitioner_id = ?`, id).Scan(
		&p.ID, &p.UserID, &p.Name, &p.Specialization, &p.Bio, &p.ConsultationFee,
		&p.StartHour, &p.EndHour, &p.Verified, &p.DocumentURLs, &p.CreatedAt); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Practitioner not found"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// GET /api/practitioners/specialization/:specialization
func GetBySpecialization(c *gin.Context) {
	specialization := c.Param("specialization")

	profiles, err := listProfiles(c, true)
	if err != nil {
		return
	}

	matched := []models.PractitionerProfile{}
	for _, p := range profiles {
		if p.Specialization == specialization {
			matched = append(matched, p)
		}
	}

	c.JSON(http.StatusOK, gin.H{"practitioners": matched, "specialization": specialization})
}

// profileUpdate carries the editable profile fields. Every field is a
// pointer so an omitted field keeps its current value instead of being
// overwritten with a zero.
type profileUpdate struct {
	Specialization  *string  `json:"specialization"`
	Bio             *string  `json:"bio"`
	ConsultationFee *float64 `json:"consultation_fee"`
	StartHour       *int     `json:"start_hour"`
	EndHour         *int     `json:"end_hour"`
}

// mergeProfile folds the provided fields into the stored profile and
// validates the result.
func mergeProfile(current models.PractitionerProfile, in profileUpdate) (models.PractitionerProfile, error) {
	merged := current
	if in.Specialization != nil {
		merged.Specialization = *in.Specialization
	}
	if in.Bio != nil {
		merged.Bio = *in.Bio
	}
	if in.ConsultationFee != nil {
		merged.ConsultationFee = *in.ConsultationFee
	}
	if in.StartHour != nil {
		merged.StartHour = *in.StartHour
	}
	if in.EndHour != nil {
		merged.EndHour = *in.EndHour
	}

	if merged.ConsultationFee < 0 {
		return models.PractitionerProfile{}, errors.New("fee cannot be negative")
	}
	if merged.EndHour <= merged.StartHour || merged.StartHour < 0 || merged.EndHour > 24 {
		return models.PractitionerProfile{}, errors.New("invalid availability window")
	}

	return merged, nil
}

// PUT /api/practitioners/:id/profile
//
// A practitioner edits their own profile; fee and hours included.
// Partial updates are the norm: only the fields present in the payload
// change.
func UpdateProfile(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid practitioner id"})
		return
	}

	var input profileUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}

	var current models.PractitionerProfile
	if err := session.Query(`SELECT `+profileColumns+` FROM practitioner_profiles
	                         WHERE practitioner_id = ?`, id).Scan(
		&current.ID, &current.UserID, &current.Name, &current.Specialization, &current.Bio,
		&current.ConsultationFee, &current.StartHour, &current.EndHour,
		&current.Verified, &current.DocumentURLs, &current.CreatedAt); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Practitioner not found"})
		return
	}

	if current.UserID != c.GetString("user_id") && c.GetString("role") != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	merged, err := mergeProfile(current, input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := session.Query(`UPDATE practitioner_profiles
	                         SET specialization = ?, bio = ?, consultation_fee = ?, start_hour = ?, end_hour = ?
	                         WHERE practitioner_id = ?`,
		merged.Specialization, merged.Bio, merged.ConsultationFee,
		merged.StartHour, merged.EndHour, id).Exec(); err != nil {
		log.Println("❌ Profile update failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Profile update failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

// ✅ PUT /api/practitioners/:id/verify  (admin)
func VerifyPractitioner(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid practitioner id"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}

	if err := session.Query(`UPDATE practitioner_profiles SET verified = true
	                         WHERE practitioner_id = ?`, id).Exec(); err != nil {
		log.Println("❌ Verification failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		return
	}

	// Newly verified profiles become searchable.
	var p models.PractitionerProfile
	if err := session.Query(`SELECT `+profileColumns+` FROM practitioner_profiles
	                         WHERE practitioner_id = ?`, id).Scan(
		&p.ID, &p.UserID, &p.Name, &p.Specialization, &p.Bio, &p.ConsultationFee,
		&p.StartHour, &p.EndHour, &p.Verified, &p.DocumentURLs, &p.CreatedAt); err == nil {
		go service.IndexPractitioner(p)
	}

	log.Println("✅ Practitioner verified:", id)
	c.JSON(http.StatusOK, gin.H{"message": "Practitioner verified"})
}

// 🪣 POST /api/practitioners/:id/documents
func UploadDocument(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid practitioner id"})
		return
	}

	file, err := c.FormFile("document")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing document file"})
		return
	}

	objectName, err := services.UploadVerificationDocument(id.String(), file)
	if err != nil {
		log.Println("❌ Document upload failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}

	if err := session.Query(`UPDATE practitioner_profiles SET document_urls = document_urls + ?
	                         WHERE practitioner_id = ?`, []string{objectName}, id).Exec(); err != nil {
		log.Println("⚠️ Document reference save failed:", err)
	}

	url, err := services.SignedDocumentURL(c.Request.Context(), objectName, 24*time.Hour)
	if err != nil {
		log.Println("⚠️ Signed URL generation failed:", err)
	}

	c.JSON(http.StatusCreated, gin.H{"object": objectName, "url": url})
}

// 🔍 GET /api/practitioners/search?q=...
func SearchPractitioners(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing search query"})
		return
	}

	results, err := service.SearchPractitioners(query)
	if err != nil {
		log.Println("❌ Practitioner search failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}

func listProfiles(c *gin.Context, verified bool) ([]models.PractitionerProfile, error) {
	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return nil, err
	}

	iter := session.Query(`SELECT `+profileColumns+` FROM practitioner_profiles
	                       WHERE verified = ? ALLOW FILTERING`, verified).Iter()

	profiles := []models.PractitionerProfile{}
	var p models.PractitionerProfile
	for iter.Scan(&p.ID, &p.UserID, &p.Name, &p.Specialization, &p.Bio, &p.ConsultationFee,
		&p.StartHour, &p.EndHour, &p.Verified, &p.DocumentURLs, &p.CreatedAt) {
		profiles = append(profiles, p)
		p = models.PractitionerProfile{}
	}
	if err := iter.Close(); err != nil {
		log.Println("❌ Practitioner list failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Practitioner lookup failed"})
		return nil, err
	}

	return profiles, nil
}
