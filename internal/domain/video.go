package domain

import "time"

// Video holds the final reported metrics for a single video. Rows are written
// by the external ingestion job; this service only ever reads them.
type Video struct {
	ID             string    `json:"id"               db:"id"`
	CreatorID      string    `json:"creator_id"       db:"creator_id"`
	VideoCreatedAt time.Time `json:"video_created_at" db:"video_created_at"`
	ViewsCount     int64     `json:"views_count"      db:"views_count"`
	LikesCount     int64     `json:"likes_count"      db:"likes_count"`
	CommentsCount  int64     `json:"comments_count"   db:"comments_count"`
	ReportsCount   int64     `json:"reports_count"    db:"reports_count"`
	CreatedAt      time.Time `json:"created_at"       db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"       db:"updated_at"`
}

// VideoSnapshot is an hourly point-in-time capture of a video's counters,
// plus the deltas since the previous capture. Every snapshot belongs to
// exactly one video (cascading delete at the store level).
type VideoSnapshot struct {
	ID                 string    `json:"id"                   db:"id"`
	VideoID            string    `json:"video_id"             db:"video_id"`
	ViewsCount         int64     `json:"views_count"          db:"views_count"`
	LikesCount         int64     `json:"likes_count"          db:"likes_count"`
	CommentsCount      int64     `json:"comments_count"       db:"comments_count"`
	ReportsCount       int64     `json:"reports_count"        db:"reports_count"`
	DeltaViewsCount    int64     `json:"delta_views_count"    db:"delta_views_count"`
	DeltaLikesCount    int64     `json:"delta_likes_count"    db:"delta_likes_count"`
	DeltaCommentsCount int64     `json:"delta_comments_count" db:"delta_comments_count"`
	DeltaReportsCount  int64     `json:"delta_reports_count"  db:"delta_reports_count"`
	CreatedAt          time.Time `json:"created_at"           db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"           db:"updated_at"`
}
