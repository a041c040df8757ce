package community

import (
	"log"
	"net/http"
	"sort"
	"time"

	"wellnexus_back_end/internal/database"
	"wellnexus_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// POST /api/community/questions
func CreateQuestion(c *gin.Context) {
	var input struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Question content is required"})
		return
	}

	session, err := database.GetBookingsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}

	question := models.Question{
		ID:        gocql.TimeUUID(),
		UserID:    c.GetString("user_id"),
		Content:   input.Content,
		CreatedAt: time.Now(),
	}
	if err := session.Query(`INSERT INTO questions (id, user_id, content, created_at)
	                         VALUES (?, ?, ?, ?)`,
		question.ID, question.UserID, question.Content, question.CreatedAt).Exec(); err != nil {
		log.Println("❌ Question save failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Question save failed"})
		return
	}

	c.JSON(http.StatusCreated, question)
}

// GET /api/community/questions
//
// Newest first.
func GetQuestions(c *gin.Context) {
	session, err := database.GetBookingsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}

	iter := session.Query(`SELECT id, user_id, content, created_at FROM questions`).Iter()

	questions := []models.Question{}
	var q models.Question
	for iter.Scan(&q.ID, &q.UserID, &q.Content, &q.CreatedAt) {
		questions = append(questions, q)
	}
	if err := iter.Close(); err != nil {
		log.Println("❌ Question list failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Question lookup failed"})
		return
	}

	sort.Slice(questions, func(i, j int) bool {
		return questions[i].CreatedAt.After(questions[j].CreatedAt)
	})

	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

// POST /api/community/answers
//
// Only practitioners and admins answer.
func CreateAnswer(c *gin.Context) {
	role := c.GetString("role")
	if role != "practitioner" && role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only practitioners can answer"})
		return
	}

	var input struct {
		QuestionID string `json:"question_id" binding:"required"`
		Content    string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Question id and content are required"})
		return
	}

	questionID, err := gocql.ParseUUID(input.QuestionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question id"})
		return
	}

	session, err := database.GetBookingsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}

	var exists gocql.UUID
	if err := session.Query(`SELECT id FROM questions WHERE id = ?`, questionID).Scan(&exists); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	answer := models.Answer{
		ID:             gocql.TimeUUID(),
		QuestionID:     questionID,
		PractitionerID: c.GetString("user_id"),
		Content:        input.Content,
		CreatedAt:      time.Now(),
	}
	if err := session.Query(`INSERT INTO answers (id, question_id, practitioner_id, content, created_at)
	                         VALUES (?, ?, ?, ?, ?)`,
		answer.ID, answer.QuestionID, answer.PractitionerID, answer.Content, answer.CreatedAt).Exec(); err != nil {
		log.Println("❌ Answer save failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Answer save failed"})
		return
	}

	c.JSON(http.StatusCreated, answer)
}

// GET /api/community/questions/:questionId/answers
//
// Oldest first, the reading order of a thread.
func GetQuestionAnswers(c *gin.Context) {
	questionID, err := gocql.ParseUUID(c.Param("questionId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question id"})
		return
	}

	session, err := database.GetBookingsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}

	iter := session.Query(`SELECT id, question_id, practitioner_id, content, created_at
	                       FROM answers WHERE question_id = ? ALLOW FILTERING`, questionID).Iter()

	answers := []models.Answer{}
	var a models.Answer
	for iter.Scan(&a.ID, &a.QuestionID, &a.PractitionerID, &a.Content, &a.CreatedAt) {
		answers = append(answers, a)
	}
	if err := iter.Close(); err != nil {
		log.Println("❌ Answer list failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Answer lookup failed"})
		return
	}

	sort.Slice(answers, func(i, j int) bool {
		return answers[i].CreatedAt.Before(answers[j].CreatedAt)
	})

	c.JSON(http.StatusOK, gin.H{"answers": answers, "count": len(answers)})
}
