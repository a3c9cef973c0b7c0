package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/AccelByte/accelbyte-go-sdk/platform-sdk/pkg/platformclient/fulfillment"
	"github.com/AccelByte/accelbyte-go-sdk/platform-sdk/pkg/platformclientmodels"
	"github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/service/platform"
	"github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/service/social"
	"github.com/AccelByte/accelbyte-go-sdk/social-sdk/pkg/socialclient/user_statistic"
	"github.com/AccelByte/extend-achievement-unlocker/pkg/achievement"
	"github.com/sirupsen/logrus"
)

// EntitlementService grants reward items through AGS Platform fulfillment.
type EntitlementService struct {
	fulfillmentClient *platform.FulfillmentService
	cfg               EntitlementServiceConfig
}

type EntitlementServiceConfig struct {
	Namespace string
}

func NewEntitlementService(
	fulfillmentClient *platform.FulfillmentService,
	cfg EntitlementServiceConfig,
) *EntitlementService {
	return &EntitlementService{
		fulfillmentClient: fulfillmentClient,
		cfg:               cfg,
	}
}

func (s *EntitlementService) GrantEntitlement(
	ctx context.Context,
	userID string,
	itemID string,
	quantity int,
) error {
	input := s.fulfillItemParams(ctx, userID, itemID, quantity)

	fulfillmentResponse, err := s.fulfillmentClient.FulfillItemShort(input)
	if err != nil {
		return fmt.Errorf("failed to fulfill item: %w", err)
	}

	if fulfillmentResponse == nil {
		return fmt.Errorf("could not grant item to user: empty response")
	}

	return nil
}

// fulfillItemParams builds the fulfillment request. ctx bounds the HTTP call.
func (s *EntitlementService) fulfillItemParams(ctx context.Context, userID, itemID string, quantity int) *fulfillment.FulfillItemParams {
	qnty := int32(quantity)

	return &fulfillment.FulfillItemParams{
		Namespace: s.cfg.Namespace,
		UserID:    userID,
		Context:   ctx,
		Body: &platformclientmodels.FulfillmentRequest{
			ItemID:   itemID,
			Quantity: &qnty,
			Source:   platformclientmodels.FulfillmentRequestSourceREWARD,
		},
	}
}

// AccelByteStatsProvider reads counters from AGS user statistics.
// Each stat code maps to one requirement type.
type AccelByteStatsProvider struct {
	statisticsService *social.UserStatisticService
	cfg               AccelByteStatsProviderConfig
}

type AccelByteStatsProviderConfig struct {
	Namespace string

	// StatCodes maps AGS stat codes to requirement types.
	StatCodes map[string]string
}

func NewAccelByteStatsProvider(
	statisticsService *social.UserStatisticService,
	cfg AccelByteStatsProviderConfig,
) *AccelByteStatsProvider {
	return &AccelByteStatsProvider{
		statisticsService: statisticsService,
		cfg:               cfg,
	}
}

// DefaultStatCodes derives stat codes from requirement types: prefix + type with '_' replaced by '-'.
// For example "fail_count" with prefix "ach-" becomes "ach-fail-count".
func DefaultStatCodes(prefix string, requirementTypes []string) map[string]string {
	codes := make(map[string]string, len(requirementTypes))
	for _, t := range requirementTypes {
		codes[prefix+strings.ReplaceAll(t, "_", "-")] = t
	}
	return codes
}

// Snapshot fetches all mapped stat items for the user in one call.
func (s *AccelByteStatsProvider) Snapshot(ctx context.Context, userID string) (achievement.StatsSnapshot, error) {
	input := s.statItemsParams(ctx, userID)

	stats, err := s.statisticsService.GetUserStatItemsShort(input)
	if err != nil {
		return achievement.StatsSnapshot{}, fmt.Errorf("failed to get stat items for user %s: %w", userID, err)
	}

	values := make(map[string]float64)
	if stats != nil && stats.Data != nil {
		for _, stat := range stats.Data {
			if stat.StatCode != nil && stat.Value != nil {
				values[*stat.StatCode] = *stat.Value
			}
		}
	}

	return achievement.StatsSnapshot{
		UserID:   userID,
		Counters: mapStatValues(s.cfg.StatCodes, values),
	}, nil
}

// statItemsParams requests every mapped stat code in one call. ctx bounds the HTTP call.
func (s *AccelByteStatsProvider) statItemsParams(ctx context.Context, userID string) *user_statistic.GetUserStatItemsParams {
	codes := make([]string, 0, len(s.cfg.StatCodes))
	for code := range s.cfg.StatCodes {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	statCodes := strings.Join(codes, ",")

	return &user_statistic.GetUserStatItemsParams{
		Namespace: s.cfg.Namespace,
		UserID:    userID,
		StatCodes: &statCodes,
		Context:   ctx,
	}
}

// mapStatValues converts stat values to requirement counters. Unmapped codes are dropped;
// fractional values are floored.
func mapStatValues(statCodes map[string]string, values map[string]float64) map[string]int {
	counters := make(map[string]int, len(values))
	for code, value := range values {
		requirementType, ok := statCodes[code]
		if !ok {
			logrus.Debugf("ignoring unmapped stat code %s", code)
			continue
		}
		counters[requirementType] = int(math.Floor(value))
	}
	return counters
}
