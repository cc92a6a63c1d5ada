// Package metrics 收集登入、註冊、筆記操作與密碼雜湊耗時的 Prometheus 指標。
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 結果標籤
const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultConflict = "conflict"
	ResultNoEmail  = "unknown_email"
	ResultBadPass  = "bad_password"
	ResultDeleted  = "deleted"
	ResultNoop     = "noop"
)

// Recorder 為 handler 與 service 使用的指標介面
type Recorder interface {
	RecordSignUp(result string)
	RecordLogin(result string)
	RecordNoteCreated()
	RecordNoteDeleted(result string)
	ObservePasswordHash(d time.Duration)
}

// Collector 是 Recorder 的 Prometheus 實作
type Collector struct {
	signUps      *prometheus.CounterVec
	logins       *prometheus.CounterVec
	notesCreated prometheus.Counter
	notesDeleted *prometheus.CounterVec
	hashLatency  prometheus.Histogram
}

// NewCollector 建立 Collector 並註冊到 reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		signUps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quicknotes_signups_total",
			Help: "註冊請求數，依結果分類",
		}, []string{"result"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quicknotes_logins_total",
			Help: "登入請求數，依結果分類",
		}, []string{"result"}),
		notesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quicknotes_notes_created_total",
			Help: "新增的筆記數",
		}),
		notesDeleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quicknotes_notes_deleted_total",
			Help: "刪除筆記請求數，noop 表示不存在或非擁有者",
		}, []string{"result"}),
		hashLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "quicknotes_password_hash_seconds",
			Help:    "密碼雜湊與驗證耗時（秒）",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.signUps,
		c.logins,
		c.notesCreated,
		c.notesDeleted,
		c.hashLatency,
	)
	return c
}

func (c *Collector) RecordSignUp(result string) {
	c.signUps.WithLabelValues(result).Inc()
}

func (c *Collector) RecordLogin(result string) {
	c.logins.WithLabelValues(result).Inc()
}

func (c *Collector) RecordNoteCreated() {
	c.notesCreated.Inc()
}

func (c *Collector) RecordNoteDeleted(result string) {
	c.notesDeleted.WithLabelValues(result).Inc()
}

func (c *Collector) ObservePasswordHash(d time.Duration) {
	c.hashLatency.Observe(d.Seconds())
}

// Handler 回傳 /metrics 的 HTTP handler
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop 丟棄所有指標，供測試使用
type Nop struct{}

func (Nop) RecordSignUp(string)                {}
func (Nop) RecordLogin(string)                 {}
func (Nop) RecordNoteCreated()                 {}
func (Nop) RecordNoteDeleted(string)           {}
func (Nop) ObservePasswordHash(time.Duration) {}
