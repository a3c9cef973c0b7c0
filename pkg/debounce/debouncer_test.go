// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package debounce

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_ShouldEvaluate(t *testing.T) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		calls    []time.Duration
		expected []bool
	}{
		{
			name:     "first trigger passes",
			calls:    []time.Duration{0},
			expected: []bool{true},
		},
		{
			name:     "second trigger within cooldown suppressed",
			calls:    []time.Duration{0, 500 * time.Millisecond},
			expected: []bool{true, false},
		},
		{
			name:     "trigger at cooldown boundary passes",
			calls:    []time.Duration{0, 2 * time.Second},
			expected: []bool{true, true},
		},
		{
			name:     "suppressed trigger does not extend window",
			calls:    []time.Duration{0, 1500 * time.Millisecond, 2100 * time.Millisecond},
			expected: []bool{true, false, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDebouncer(2 * time.Second)
			for i, offset := range tt.calls {
				got := d.ShouldEvaluate(context.Background(), "user-1", base.Add(offset))
				if got != tt.expected[i] {
					t.Errorf("call %d: ShouldEvaluate() = %v, expected %v", i, got, tt.expected[i])
				}
			}
		})
	}
}

func TestDebouncer_PerUser(t *testing.T) {
	d := NewDebouncer(0)
	now := time.Now()

	if d.Cooldown() != DefaultCooldown {
		t.Errorf("Cooldown() = %v, expected %v", d.Cooldown(), DefaultCooldown)
	}

	if !d.ShouldEvaluate(context.Background(), "user-a", now) {
		t.Error("Expected first trigger for user-a to pass")
	}
	// a burst from one user must not starve another
	if !d.ShouldEvaluate(context.Background(), "user-b", now) {
		t.Error("Expected first trigger for user-b to pass")
	}
	if d.ShouldEvaluate(context.Background(), "user-a", now.Add(time.Millisecond)) {
		t.Error("Expected second trigger for user-a to be suppressed")
	}
}

func TestDebouncer_ConcurrentTriggers(t *testing.T) {
	d := NewDebouncer(time.Minute)
	now := time.Now()

	var passed int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if d.ShouldEvaluate(context.Background(), "user-1", now) {
				atomic.AddInt32(&passed, 1)
			}
		}()
	}
	wg.Wait()

	if passed != 1 {
		t.Errorf("Expected exactly 1 trigger to pass, got %d", passed)
	}
}

func TestDebouncer_ForgetAndSweep(t *testing.T) {
	d := NewDebouncer(2 * time.Second)
	now := time.Now()

	d.ShouldEvaluate(context.Background(), "user-a", now)
	d.ShouldEvaluate(context.Background(), "user-b", now.Add(time.Second))

	d.Forget("user-a")
	if !d.ShouldEvaluate(context.Background(), "user-a", now.Add(100*time.Millisecond)) {
		t.Error("Expected forgotten user to pass")
	}

	if removed := d.Sweep(now.Add(2500 * time.Millisecond)); removed != 1 {
		t.Errorf("Sweep() = %d, expected 1", removed)
	}
	if d.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", d.Len())
	}
}
