package repositories

import (
	"context"
	"fmt"

	"github.com/cliptube/backend/internal/db"
	"github.com/cliptube/backend/internal/logging"
	"github.com/cliptube/backend/internal/models"
)

// PostgresStatsRepository aggregates dashboard counters straight from the
// entity tables.
type PostgresStatsRepository struct {
	pool db.Pool
}

// NewPostgresStatsRepository constructs a stats repository backed by PostgreSQL.
func NewPostgresStatsRepository(pool db.Pool) *PostgresStatsRepository {
	return &PostgresStatsRepository{pool: pool}
}

// ChannelStats runs the three dashboard aggregations for a channel. Every
// counter coalesces to zero for channels with no activity.
//
// The like count left-joins each like to the three possible targets and
// keeps rows whose target belongs to the channel. A like references exactly
// one target, so at most one branch of the OR can match per row.
func (r *PostgresStatsRepository) ChannelStats(ctx context.Context, channelID string) (models.ChannelStats, error) {
	ctx, span := logging.StartSpan(ctx, "stats.channel")
	defer span.End()

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.ChannelStats{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var stats models.ChannelStats

	err = conn.QueryRow(ctx, `
        SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1
    `, channelID).Scan(&stats.TotalSubscribers)
	if err != nil {
		return models.ChannelStats{}, fmt.Errorf("count subscribers: %w", err)
	}

	err = conn.QueryRow(ctx, `
        SELECT COUNT(*)
        FROM likes l
        LEFT JOIN videos v ON v.id = l.video_id
        LEFT JOIN comments c ON c.id = l.comment_id
        LEFT JOIN tweets t ON t.id = l.tweet_id
        WHERE v.owner_id = $1 OR c.owner_id = $1 OR t.owner_id = $1
    `, channelID).Scan(&stats.TotalLikes)
	if err != nil {
		return models.ChannelStats{}, fmt.Errorf("count likes: %w", err)
	}

	err = conn.QueryRow(ctx, `
        SELECT COALESCE(SUM(views), 0), COUNT(*) FROM videos WHERE owner_id = $1
    `, channelID).Scan(&stats.TotalViews, &stats.TotalVideos)
	if err != nil {
		return models.ChannelStats{}, fmt.Errorf("count views: %w", err)
	}

	return stats, nil
}

var _ StatsRepository = (*PostgresStatsRepository)(nil)
