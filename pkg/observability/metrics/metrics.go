package metrics

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

var (
	chatRequestsTotal    atomic.Int64
	degradedAnswersTotal atomic.Int64
	historyDeletedTotal  atomic.Int64
	loginsTotal          atomic.Int64
)

func IncChatRequests() { chatRequestsTotal.Add(1) }

func IncDegradedAnswers() { degradedAnswersTotal.Add(1) }

func AddHistoryDeleted(n int64) { historyDeletedTotal.Add(n) }

func IncLogins() { loginsTotal.Add(1) }

func WritePrometheus(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	fmt.Fprintf(w, "# HELP radgpt_chat_requests_total Number of chat requests answered since start.\n")
	fmt.Fprintf(w, "# TYPE radgpt_chat_requests_total counter\n")
	fmt.Fprintf(w, "radgpt_chat_requests_total %d\n", chatRequestsTotal.Load())

	fmt.Fprintf(w, "# HELP radgpt_chat_degraded_answers_total Number of answers substituted after a failed generation call.\n")
	fmt.Fprintf(w, "# TYPE radgpt_chat_degraded_answers_total counter\n")
	fmt.Fprintf(w, "radgpt_chat_degraded_answers_total %d\n", degradedAnswersTotal.Load())

	fmt.Fprintf(w, "# HELP radgpt_chat_history_deleted_total Number of chat messages removed by history clears.\n")
	fmt.Fprintf(w, "# TYPE radgpt_chat_history_deleted_total counter\n")
	fmt.Fprintf(w, "radgpt_chat_history_deleted_total %d\n", historyDeletedTotal.Load())

	fmt.Fprintf(w, "# HELP radgpt_auth_logins_total Number of successful logins since start.\n")
	fmt.Fprintf(w, "# TYPE radgpt_auth_logins_total counter\n")
	fmt.Fprintf(w, "radgpt_auth_logins_total %d\n", loginsTotal.Load())
}
