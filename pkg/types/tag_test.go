// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "empty", want: ModeEmpty},
		{in: "gold", want: ModeGold},
		{in: "stanford", want: ModeStanford},
		{in: "banana", wantErr: true},
		{in: "Gold", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "empty, gold, stanford")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNeedsTagger(t *testing.T) {
	assert.False(t, ModeEmpty.NeedsTagger())
	assert.False(t, ModeGold.NeedsTagger())
	assert.True(t, ModeStanford.NeedsTagger())
}
