package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"mindwell-api/internal/insight"
	"mindwell-api/internal/model"
	"mindwell-api/internal/mood"
	wirev1 "mindwell-api/internal/wire/v1"
)

func (h *Handler) LogMood(ctx context.Context, req *wirev1.LogMoodRequest) (*wirev1.LogMoodResponse, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}
	if req.Date == "" || req.Mood == "" {
		return nil, status.Error(codes.InvalidArgument, "date and mood required")
	}

	entry, err := h.moods.Log(ctx, userID, req.Date, req.Mood, int(req.Intensity), req.Notes)
	if err != nil {
		return nil, h.rpcError("log mood", err)
	}
	return &wirev1.LogMoodResponse{Entry: toWireMood(entry)}, nil
}

func (h *Handler) DeleteMood(ctx context.Context, req *wirev1.DeleteMoodRequest) (*wirev1.DeleteMoodResponse, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}
	if req.Date == "" {
		return nil, status.Error(codes.InvalidArgument, "date required")
	}

	if err := h.moods.Delete(ctx, userID, req.Date); err != nil {
		return nil, h.rpcError("delete mood", err)
	}
	return &wirev1.DeleteMoodResponse{}, nil
}

func (h *Handler) MoodHistory(ctx context.Context, req *wirev1.MoodHistoryRequest) (*wirev1.MoodHistoryResponse, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := h.moods.History(ctx, userID, int(req.WindowDays))
	if err != nil {
		return nil, h.rpcError("mood history", err)
	}

	out := make([]*wirev1.MoodEntry, len(entries))
	for i := range entries {
		out[i] = toWireMood(&entries[i])
	}
	return &wirev1.MoodHistoryResponse{Entries: out}, nil
}

func (h *Handler) MoodAnalytics(ctx context.Context, req *wirev1.MoodAnalyticsRequest) (*wirev1.MoodAnalyticsResponse, error) {
	userID, err := uid(ctx)
	if err != nil {
		return nil, err
	}

	a, err := h.moods.Analytics(ctx, userID, int(req.WindowDays))
	if err != nil {
		return nil, h.rpcError("mood analytics", err)
	}

	daily := make([]*wirev1.DailyAverage, len(a.Daily))
	for i, d := range a.Daily {
		daily[i] = &wirev1.DailyAverage{Date: d.Date, AvgIntensity: d.AvgIntensity}
	}

	return &wirev1.MoodAnalyticsResponse{
		StreakDays:   int32(a.StreakDays),
		Trend:        string(a.Trend),
		Distribution: toWireDistribution(a.Distribution),
		Daily:        daily,
		Weekly:       toWireSummary(a.Weekly),
		Monthly:      toWireSummary(a.Monthly),
		Insight:      insight.Recommend(a.Trend, a.Weekly.AvgIntensity, a.Weekly.Entries),
	}, nil
}

func toWireMood(e *model.MoodEntry) *wirev1.MoodEntry {
	return &wirev1.MoodEntry{
		ID:         e.ID,
		UserID:     e.UserID,
		Date:       e.Date,
		Mood:       string(e.Mood),
		Intensity:  int32(e.Intensity),
		Notes:      e.Notes,
		RecordedAt: e.RecordedAt,
	}
}

// toWireDistribution walks the fixed category order so the repeated field is
// deterministic regardless of map iteration.
func toWireDistribution(dist map[model.Mood]int) []*wirev1.MoodCount {
	if dist == nil {
		return nil
	}
	out := make([]*wirev1.MoodCount, 0, len(model.Moods))
	for _, m := range model.Moods {
		out = append(out, &wirev1.MoodCount{Mood: string(m), Count: int32(dist[m])})
	}
	return out
}

func toWireSummary(s mood.Summary) *wirev1.MoodSummary {
	return &wirev1.MoodSummary{
		Entries:      int32(s.Entries),
		AvgIntensity: s.AvgIntensity,
		TopMood:      string(s.TopMood),
		Distribution: toWireDistribution(s.Distribution),
	}
}
