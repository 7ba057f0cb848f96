package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   map[string]any
}

func newBackend(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Client, *[]recordedRequest) {
	t.Helper()
	var seen []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{Method: r.Method, Path: r.URL.EscapedPath()}
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &rec.Body)
		}
		seen = append(seen, rec)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL + "/"), &seen
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestUploadResumeSendsUserAndText(t *testing.T) {
	client, seen := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"id":7,"user_id":1,"original_text":"Experienced engineer..."}`)
	})

	got, err := client.UploadResume(context.Background(), 1, "Experienced engineer...")
	require.NoError(t, err)

	require.Len(t, *seen, 1)
	req := (*seen)[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/resumes", req.Path)
	assert.Equal(t, float64(1), req.Body["user_id"])
	assert.Equal(t, "Experienced engineer...", req.Body["text"])
	assert.Equal(t, 7, got.ID)
	assert.Equal(t, "Experienced engineer...", got.Content())
}

func TestListResumesKeepsOrder(t *testing.T) {
	client, _ := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[{"id":2,"original_text":"b"},{"id":1,"text":"a"}]`)
	})

	got, err := client.ListResumes(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].ID)
	assert.Equal(t, "b", got[0].Content())
	assert.Equal(t, "a", got[1].Content())
}

func TestGetFeedbackPostsEmptyObject(t *testing.T) {
	client, seen := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"edited_text":"Better text","feedback":"Use numbers"}`)
	})

	got, err := client.GetFeedback(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, Feedback{EditedText: "Better text", Feedback: "Use numbers"}, got)
	assert.Equal(t, "/resumes/42/feedback", (*seen)[0].Path)
	assert.Equal(t, http.MethodPost, (*seen)[0].Method)
	assert.NotNil(t, (*seen)[0].Body)
	assert.Empty(t, (*seen)[0].Body)
}

func TestGenerateResumeOmitsEmptyCompany(t *testing.T) {
	client, seen := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"generated_text":"Dear hiring manager"}`)
	})

	got, err := client.GenerateResume(context.Background(), GenerateResumeRequest{
		Name:            "Kim",
		Role:            "Backend",
		ExperienceYears: 3,
		ExperienceList:  "payments",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dear hiring manager", got.GeneratedText)

	body := (*seen)[0].Body
	_, hasCompany := body["company"]
	assert.False(t, hasCompany)
	assert.Equal(t, float64(3), body["experience_years"])
	assert.Equal(t, "payments", body["experience_list"])
}

func TestGenerateQuestionsNormalizesResponse(t *testing.T) {
	client, seen := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"questions":[{"id":1,"question":"Why this role?"}]}`)
	})

	got, err := client.GenerateQuestions(context.Background(), QuestionsRequest{UserID: 1, Company: "Acme", Role: "SRE"})
	require.NoError(t, err)
	assert.Equal(t, []Question{{ID: 1, Text: "Why this role?"}}, got)
	assert.Equal(t, "/interviews/questions", (*seen)[0].Path)
	assert.Equal(t, "Acme", (*seen)[0].Body["company"])
}

func TestSaveAndEvaluateAnswer(t *testing.T) {
	client, seen := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/interviews/answers":
			writeJSON(w, http.StatusOK, `{"id":11}`)
		case "/interviews/evaluate/11":
			writeJSON(w, http.StatusOK, `{"score":8.5,"feedback":"Good structure"}`)
		default:
			writeJSON(w, http.StatusNotFound, `{"detail":"Not Found"}`)
		}
	})

	saved, err := client.SaveAnswer(context.Background(), SaveAnswerRequest{QuestionID: 3, AnswerText: "Because"})
	require.NoError(t, err)
	assert.Equal(t, 11, saved.ID)

	eval, err := client.EvaluateAnswer(context.Background(), saved.ID, "Because")
	require.NoError(t, err)
	assert.Equal(t, Evaluation{Score: 8.5, Feedback: "Good structure"}, eval)

	require.Len(t, *seen, 2)
	assert.Equal(t, float64(3), (*seen)[0].Body["question_id"])
	assert.Equal(t, "Because", (*seen)[1].Body["answer_text"])
}

func TestGetDashboard(t *testing.T) {
	client, seen := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"user_id":1,"user_name":"User1","total_resumes":2,"reviewed_resumes":1,"total_questions":5,"total_answers":3,"total_evaluated_answers":2}`)
	})

	got, err := client.GetDashboard(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "/dashboard/1", (*seen)[0].Path)
	assert.Equal(t, "User1", got.UserName)
	assert.Equal(t, 2, got.TotalEvaluatedAnswers)
}

func TestExportTwoStepFlow(t *testing.T) {
	client, seen := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.EscapedPath() {
		case "/exporter/1/pdf":
			writeJSON(w, http.StatusOK, `{"filename":"report_user_1.pdf","download_url":"/exporter/download/pdf/report_user_1.pdf"}`)
		case "/exporter/download/pdf/report_user_1.pdf":
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = w.Write([]byte("%PDF-1.4 fake"))
		default:
			writeJSON(w, http.StatusNotFound, `{"detail":"File not found"}`)
		}
	})

	ticket, err := client.RequestExportPdf(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "report_user_1.pdf", ticket.Filename)

	file, err := client.DownloadPdf(context.Background(), ticket.Filename)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Equal(t, []byte("%PDF-1.4 fake"), file.Data)
	assert.Equal(t, "report_user_1.pdf", file.Filename)
	require.Len(t, *seen, 2)
}

func TestDownloadEscapesFilename(t *testing.T) {
	client, seen := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte("x"))
	})

	_, err := client.DownloadDocx(context.Background(), "a b/c.docx")
	require.NoError(t, err)
	assert.Equal(t, "/exporter/download/docx/a%20b%2Fc.docx", (*seen)[0].Path)
}

func TestRequestExportRejectsUnknownFormat(t *testing.T) {
	client := New("http://127.0.0.1:1")
	_, err := client.RequestExport(context.Background(), 1, Format("xlsx"))
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestServerErrorIsAPIErrorWithoutRetry(t *testing.T) {
	var hits atomic.Int32
	client, _ := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeJSON(w, http.StatusInternalServerError, `{"detail":"질문 생성 실패: quota"}`)
	})

	_, err := client.GenerateQuestions(context.Background(), QuestionsRequest{UserID: 1, Company: "A", Role: "B"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "generate_questions", apiErr.Op)
	assert.Contains(t, apiErr.Detail, "quota")
	assert.Equal(t, int32(1), hits.Load())
}

func TestNotFoundHelper(t *testing.T) {
	client, _ := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"detail":"Resume not found"}`)
	})

	_, err := client.GetFeedback(context.Background(), 999)
	assert.True(t, IsNotFound(err))
}

func TestTransportErrorIsWrapped(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).ListResumes(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list_resumes:")
	var apiErr *APIError
	assert.False(t, IsNotFound(err))
	assert.NotErrorAs(t, err, &apiErr)
}
