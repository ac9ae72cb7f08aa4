package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	curriculumapp "github.com/mindsacademy/backend/internal/application/curriculum"
	"github.com/mindsacademy/backend/internal/domain/catalog"
	"github.com/mindsacademy/backend/internal/infrastructure/persistence"
	"github.com/mindsacademy/backend/internal/interfaces/http/handler"
	"github.com/mindsacademy/backend/internal/interfaces/http/middleware"
)

// TestLegacyPathAPI_Integration exercises the unversioned learning-path
// routes the public site still calls: raw resources on success,
// `{"success": true}` for deletions and Portuguese error bodies.
func TestLegacyPathAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	gin.SetMode(gin.TestMode)
	testDB := NewTestDB(t)
	ctx := context.Background()

	pathRepo := persistence.NewGormPathRepository(testDB.DB)
	courseRepo := persistence.NewGormCourseRepository(testDB.DB)
	pathService := curriculumapp.NewPathService(pathRepo, courseRepo)
	pathHandler := handler.NewPathHandler(pathService)

	teacherID := uuid.New()
	testDB.CreateTestUser(teacherID, "Professora Ana", "ana@mindsacademy.com.br")

	// Simulates an authenticated teacher without running the JWT stack
	asTeacher := func(c *gin.Context) {
		c.Set(middleware.JWTUserIDKey, teacherID.String())
		c.Set(middleware.JWTRolesKey, []string{"teacher"})
		c.Next()
	}

	engine := gin.New()
	legacy := engine.Group("/api", asTeacher)
	legacy.GET("/learning-paths", pathHandler.ListLegacy)
	legacy.POST("/learning-paths", pathHandler.CreateLegacy)
	legacy.GET("/learning-paths/:pathId", pathHandler.GetLegacy)
	legacy.PATCH("/learning-paths/:pathId", pathHandler.UpdateLegacy)
	legacy.DELETE("/learning-paths/:pathId", pathHandler.DeleteLegacy)
	legacy.POST("/learning-paths/:pathId/courses", pathHandler.AddCourseLegacy)
	legacy.DELETE("/learning-paths/:pathId/courses/:courseId", pathHandler.RemoveCourseLegacy)
	legacy.PATCH("/learning-paths/:pathId/courses/reorder", pathHandler.ReorderLegacy)

	do := func(method, path string, body interface{}) *httptest.ResponseRecorder {
		var reader *bytes.Reader
		if body != nil {
			data, err := json.Marshal(body)
			require.NoError(t, err)
			reader = bytes.NewReader(data)
		} else {
			reader = bytes.NewReader(nil)
		}
		req := httptest.NewRequest(method, path, reader)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w
	}

	courseIDs := make([]uuid.UUID, 3)
	for i, title := range []string{"Curso A", "Curso B", "Curso C"} {
		course, err := catalog.NewCourse(teacherID, title, "", catalog.AudienceStudent)
		require.NoError(t, err)
		require.NoError(t, course.Publish())
		require.NoError(t, courseRepo.Save(ctx, course))
		courseIDs[i] = course.ID
	}

	var pathID string

	t.Run("Create returns the raw resource", func(t *testing.T) {
		w := do(http.MethodPost, "/api/learning-paths", map[string]string{
			"title":       "Trilha de Programação",
			"description": "Do zero ao backend",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Trilha de Programação", resp["title"])
		assert.NotContains(t, resp, "success")
		pathID = resp["id"].(string)
	})

	t.Run("Add courses in order", func(t *testing.T) {
		for _, id := range courseIDs {
			w := do(http.MethodPost, "/api/learning-paths/"+pathID+"/courses", map[string]string{
				"courseId": id.String(),
			})
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		}

		w := do(http.MethodGet, "/api/learning-paths/"+pathID, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		courses := resp["courses"].([]interface{})
		require.Len(t, courses, 3)
		first := courses[0].(map[string]interface{})
		assert.Equal(t, courseIDs[0].String(), first["course_id"])
	})

	t.Run("Reorder applies absolute positions and is idempotent", func(t *testing.T) {
		reorder := map[string]interface{}{
			"courseOrders": []map[string]interface{}{
				{"courseId": courseIDs[2].String(), "order": 1},
				{"courseId": courseIDs[0].String(), "order": 2},
				{"courseId": courseIDs[1].String(), "order": 3},
			},
		}

		for i := 0; i < 2; i++ {
			w := do(http.MethodPatch, "/api/learning-paths/"+pathID+"/courses/reorder", reorder)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			courses := resp["courses"].([]interface{})
			require.Len(t, courses, 3)
			first := courses[0].(map[string]interface{})
			assert.Equal(t, courseIDs[2].String(), first["course_id"])
			assert.Equal(t, float64(1), first["order"])
		}
	})

	t.Run("Remove course returns success flag", func(t *testing.T) {
		w := do(http.MethodDelete, "/api/learning-paths/"+pathID+"/courses/"+courseIDs[1].String(), nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.JSONEq(t, `{"success": true}`, w.Body.String())
	})

	t.Run("Update changes the title", func(t *testing.T) {
		w := do(http.MethodPatch, "/api/learning-paths/"+pathID, map[string]string{
			"title": "Trilha Completa de Programação",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Trilha Completa de Programação", resp["title"])
	})

	t.Run("Unknown path yields the Portuguese error body", func(t *testing.T) {
		w := do(http.MethodGet, "/api/learning-paths/"+uuid.NewString(), nil)
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error": "Trilha não encontrada"}`, w.Body.String())
	})

	t.Run("Delete returns success flag", func(t *testing.T) {
		w := do(http.MethodDelete, "/api/learning-paths/"+pathID, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.JSONEq(t, `{"success": true}`, w.Body.String())

		w = do(http.MethodGet, "/api/learning-paths/"+pathID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
