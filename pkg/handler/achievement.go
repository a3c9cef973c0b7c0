package handler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AccelByte/extend-achievement-unlocker/pkg/achievement"
	"github.com/AccelByte/extend-achievement-unlocker/pkg/common"
	"github.com/AccelByte/extend-achievement-unlocker/pkg/pipeline"
	"github.com/AccelByte/extend-achievement-unlocker/pkg/progress"
	"github.com/AccelByte/extend-achievement-unlocker/pkg/signal"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Achievement serves activity triggers and next-challenge queries
type Achievement struct {
	pipelineManager *pipeline.Manager
}

// NewAchievement creates a new achievement handler
func NewAchievement(pipelineManager *pipeline.Manager) *Achievement {
	return &Achievement{
		pipelineManager: pipelineManager,
	}
}

// OnActivity handles an activity event committed by the CRUD layer.
//
// Request:  {"userId": string, "kind": string, "timestamp": RFC3339 string (optional)}
// Response: {"granted": [achievement...], "multiple": bool, "error": string (partial grant only)}
func (s *Achievement) OnActivity(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	scope := common.GetScopeFromContext(ctx, "Achievement.OnActivity")
	defer scope.Finish()

	event, err := activityFromRequest(req)
	if err != nil {
		scope.Log.Warnf("invalid activity request: %v", err)
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}

	scope.TraceTag("userId", event.UserID)
	scope.Log.Debugf("received activity event: userId=%s kind=%s", event.UserID, event.Kind)

	granted, err := s.pipelineManager.OnActivity(scope.Ctx, event)
	var grantErr error
	if err != nil {
		scope.TraceError(err)
		switch {
		case errors.Is(err, signal.ErrInvalidEvent):
			return nil, status.Errorf(codes.InvalidArgument, "%v", err)
		case errors.Is(err, pipeline.ErrGrantFailed):
			// Achievements already granted in this pass are persisted and notified.
			scope.Log.Warnf("partial grant for user %s: %v", event.UserID, err)
			grantErr = err
		default:
			scope.Log.Errorf("evaluation failed for user %s: %v", event.UserID, err)
			return nil, status.Errorf(codes.Internal, "evaluation failed: %v", err)
		}
	}

	if len(granted) > 0 {
		scope.Log.Infof("user %s unlocked %d achievements", event.UserID, len(granted))
	}

	fields := map[string]interface{}{
		"granted":  definitionsToList(granted),
		"multiple": len(granted) > 1,
	}
	if grantErr != nil {
		fields["error"] = grantErr.Error()
	}

	resp, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to build response: %v", err)
	}
	return resp, nil
}

// GetNextChallenges returns progress for locked achievements closest to completion.
//
// Request:  {"userId": string, "maxCount": number (optional)}
// Response: {"challenges": [{"achievementId", "current", "required", "ratio"}...]}
func (s *Achievement) GetNextChallenges(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	scope := common.GetScopeFromContext(ctx, "Achievement.GetNextChallenges")
	defer scope.Finish()

	fields := req.GetFields()
	userID := fields["userId"].GetStringValue()
	if userID == "" {
		return nil, status.Errorf(codes.InvalidArgument, "userId is required")
	}

	maxCount := 0
	if v, ok := fields["maxCount"]; ok {
		n := v.GetNumberValue()
		if n < 0 || n != float64(int(n)) {
			return nil, status.Errorf(codes.InvalidArgument, "maxCount must be a non-negative integer")
		}
		maxCount = int(n)
	}

	entries, err := s.pipelineManager.GetNextChallenges(scope.Ctx, userID, maxCount)
	if err != nil {
		scope.TraceError(err)
		logrus.Errorf("failed to get next challenges for user %s: %v", userID, err)
		return nil, status.Errorf(codes.Internal, "failed to get next challenges: %v", err)
	}

	resp, err := structpb.NewStruct(map[string]interface{}{
		"challenges": entriesToList(entries),
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to build response: %v", err)
	}
	return resp, nil
}

func activityFromRequest(req *structpb.Struct) (signal.ActivityEvent, error) {
	fields := req.GetFields()

	event := signal.ActivityEvent{
		UserID: fields["userId"].GetStringValue(),
		Kind:   signal.EventKind(fields["kind"].GetStringValue()),
	}

	if raw := fields["timestamp"].GetStringValue(); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return event, fmt.Errorf("%w: invalid timestamp %q", signal.ErrInvalidEvent, raw)
		}
		event.Timestamp = ts
	}

	return event, event.Validate()
}

func definitionsToList(defs []achievement.Definition) []interface{} {
	list := make([]interface{}, 0, len(defs))
	for _, d := range defs {
		list = append(list, map[string]interface{}{
			"id":          d.ID,
			"name":        d.Name,
			"description": d.Description,
			"icon":        d.Icon,
			"category":    string(d.Category),
			"rarity":      string(d.Rarity),
		})
	}
	return list
}

func entriesToList(entries []progress.Entry) []interface{} {
	list := make([]interface{}, 0, len(entries))
	for _, e := range entries {
		list = append(list, map[string]interface{}{
			"achievementId": e.AchievementID,
			"current":       e.Current,
			"required":      e.Required,
			"ratio":         e.Ratio,
		})
	}
	return list
}
