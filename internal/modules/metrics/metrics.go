// README: Business metrics backed by Redis counters. Every recorder is
// fire-and-forget: errors are logged at debug level and dropped so a metrics
// outage can never affect a booking or top-up.
package metrics

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"shuttle/internal/types"
)

const (
	keyBookingSuccess = "metrics:bookings:success"
	keyBookingFailure = "metrics:bookings:failure"
	keyRevenuePoints  = "metrics:revenue:points"
	keyTopUpSuccess   = "metrics:topups:success"
	keyTopUpFailure   = "metrics:topups:failure"
	keyTopUpPoints    = "metrics:topups:points"

	failureReasonPrefix = "metrics:bookings:failure:"
)

type Recorder struct {
	redis *redis.Client
}

func NewRecorder(redis *redis.Client) *Recorder {
	return &Recorder{redis: redis}
}

func (r *Recorder) BookingSucceeded(ctx context.Context, userID, routeID types.ID, fareCharged float64, points int64) {
	logrus.WithFields(logrus.Fields{
		"event":    "booking_success",
		"user_id":  userID,
		"route_id": routeID,
		"fare":     fareCharged,
		"points":   points,
	}).Info("booking completed")

	pipe := r.redis.Pipeline()
	pipe.Incr(ctx, keyBookingSuccess)
	pipe.IncrBy(ctx, keyRevenuePoints, points)
	pipe.Incr(ctx, "metrics:routes:"+string(routeID)+":bookings")
	if _, err := pipe.Exec(ctx); err != nil {
		logrus.WithError(err).Debug("booking success metric dropped")
	}
}

func (r *Recorder) BookingFailed(ctx context.Context, userID, routeID types.ID, reason string) {
	logrus.WithFields(logrus.Fields{
		"event":    "booking_failure",
		"user_id":  userID,
		"route_id": routeID,
		"reason":   reason,
	}).Warn("booking failed")

	pipe := r.redis.Pipeline()
	pipe.Incr(ctx, keyBookingFailure)
	pipe.Incr(ctx, failureReasonPrefix+reason)
	if _, err := pipe.Exec(ctx); err != nil {
		logrus.WithError(err).Debug("booking failure metric dropped")
	}
}

func (r *Recorder) WalletTopUp(ctx context.Context, userID types.ID, amount int64) {
	logrus.WithFields(logrus.Fields{
		"event":   "wallet_topup",
		"user_id": userID,
		"amount":  amount,
	}).Info("wallet top-up")

	pipe := r.redis.Pipeline()
	pipe.Incr(ctx, keyTopUpSuccess)
	pipe.IncrBy(ctx, keyTopUpPoints, amount)
	if _, err := pipe.Exec(ctx); err != nil {
		logrus.WithError(err).Debug("top-up metric dropped")
	}
}

func (r *Recorder) WalletTopUpFailed(ctx context.Context, userID types.ID, amount int64, reason string) {
	logrus.WithFields(logrus.Fields{
		"event":   "wallet_topup_failure",
		"user_id": userID,
		"amount":  amount,
		"reason":  reason,
	}).Warn("wallet top-up failed")

	if err := r.redis.Incr(ctx, keyTopUpFailure).Err(); err != nil {
		logrus.WithError(err).Debug("top-up failure metric dropped")
	}
}

// Summary is a point-in-time read of the counters, used by operational
// endpoints.
type Summary struct {
	BookingsSucceeded int64 `json:"bookingsSucceeded"`
	BookingsFailed    int64 `json:"bookingsFailed"`
	RevenuePoints     int64 `json:"revenuePoints"`
	TopUps            int64 `json:"topUps"`
}

func (r *Recorder) Snapshot(ctx context.Context) (Summary, error) {
	vals, err := r.redis.MGet(ctx, keyBookingSuccess, keyBookingFailure, keyRevenuePoints, keyTopUpSuccess).Result()
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		BookingsSucceeded: toInt64(vals[0]),
		BookingsFailed:    toInt64(vals[1]),
		RevenuePoints:     toInt64(vals[2]),
		TopUps:            toInt64(vals[3]),
	}, nil
}

func toInt64(v any) int64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
