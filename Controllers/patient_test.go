package Controllers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deleteRecordRequest(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/DeletePatientRecord", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	DeletePatientRecord(c)
	return w
}

func TestDeletePatientRecordStripsPathTraversal(t *testing.T) {
	gin.SetMode(gin.TestMode)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	require.NoError(t, os.MkdirAll("PatientRecords/7", 0o755))
	require.NoError(t, os.WriteFile("PatientRecords/7/scan.pdf", []byte("scan"), 0o644))
	require.NoError(t, os.WriteFile("secret.txt", []byte("keep"), 0o644))

	// A name trying to climb out of the patient's directory resolves to a
	// file inside it, so nothing outside is touched.
	w := deleteRecordRequest(t, `{"id":7,"name":"../../secret.txt"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	_, err = os.Stat("secret.txt")
	assert.NoError(t, err, "file outside the patient directory must survive")
	_, err = os.Stat("PatientRecords/7/scan.pdf")
	assert.NoError(t, err)

	// The sanitized name still deletes the real record.
	w = deleteRecordRequest(t, `{"id":7,"name":"sub/../scan.pdf"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	_, err = os.Stat("PatientRecords/7/scan.pdf")
	assert.True(t, os.IsNotExist(err), "record inside the patient directory should be gone")
}
