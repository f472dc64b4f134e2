package matbench_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/matbench"
)

func Test_ComputeSpeedup_Divides_Baseline_By_Category_When_All_Sizes_Covered(t *testing.T) {
	t.Parallel()

	records := []matbench.ResultRecord{
		rec("1", 100, 2.0),
		rec("1", 200, 8.0),
		rec("2", 100, 1.0),
		rec("2", 200, 3.0),
	}

	speedups, err := matbench.ComputeSpeedup(matbench.AggregateBySize(records, nil), matbench.DefaultBaseline)
	require.NoError(t, err)

	two := speedups["2"]
	require.Len(t, two, 2)
	assert.Equal(t, 100, two[0].Size)
	assert.InDelta(t, 2.0, two[0].Speedup, 1e-12)
	assert.Equal(t, 200, two[1].Size)
	assert.InDelta(t, 8.0/3.0, two[1].Speedup, 1e-12)

	for _, p := range speedups["1"] {
		assert.Equal(t, 1.0, p.Speedup, "baseline at size %d", p.Size)
	}
}

func Test_ComputeSpeedup_Returns_MissingBaselineError_When_Baseline_Lacks_Size(t *testing.T) {
	t.Parallel()

	records := []matbench.ResultRecord{
		rec("1", 100, 2.0),
		rec("4", 100, 0.5),
		rec("4", 300, 4.0),
		rec("4", 200, 2.0),
	}

	speedups, err := matbench.ComputeSpeedup(matbench.AggregateBySize(records, nil), "1")
	require.Error(t, err)
	assert.Nil(t, speedups)

	var missing *matbench.MissingBaselineError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "1", missing.Baseline)
	assert.Equal(t, 200, missing.Size)
}

func Test_ComputeSpeedup_Returns_MissingBaselineError_When_Baseline_Absent(t *testing.T) {
	t.Parallel()

	agg := matbench.AggregateBySize([]matbench.ResultRecord{rec("2", 100, 1)}, nil)

	_, err := matbench.ComputeSpeedup(agg, "1")

	var missing *matbench.MissingBaselineError
	require.ErrorAs(t, err, &missing)
	assert.Zero(t, missing.Size)
	assert.Contains(t, err.Error(), "not present")
}

func Test_ComputeSpeedup_Returns_ZeroTimeError_When_Category_Mean_Is_Zero(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name    string
		records []matbench.ResultRecord
		want    matbench.ZeroTimeError
	}

	tests := []testCase{
		{
			name:    "CategoryZero",
			records: []matbench.ResultRecord{rec("1", 10, 0.000001), rec("2", 10, 0)},
			want:    matbench.ZeroTimeError{Category: "2", Size: 10},
		},
		{
			name:    "BothZero",
			records: []matbench.ResultRecord{rec("1", 10, 0), rec("2", 10, 1), rec("4", 10, 0), rec("4", 20, 1), rec("1", 20, 1)},
			want:    matbench.ZeroTimeError{Category: "4", Size: 10},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			speedups, err := matbench.ComputeSpeedup(matbench.AggregateBySize(tc.records, nil), "1")
			assert.Nil(t, speedups)

			var zero *matbench.ZeroTimeError
			require.ErrorAs(t, err, &zero)
			assert.Equal(t, tc.want, *zero)
			assert.Contains(t, err.Error(), "speedup undefined")
		})
	}
}

func Test_ComputeSpeedup_Returns_Zero_When_Only_Baseline_Time_Is_Zero(t *testing.T) {
	t.Parallel()

	records := []matbench.ResultRecord{rec("1", 10, 0), rec("2", 10, 0.5)}

	speedups, err := matbench.ComputeSpeedup(matbench.AggregateBySize(records, nil), "1")
	require.NoError(t, err)

	assert.Equal(t, 1.0, speedups["1"][0].Speedup)
	assert.Zero(t, speedups["2"][0].Speedup)
}

func Test_ComputeSpeedup_Skips_Size_When_Category_Did_Not_Measure_It(t *testing.T) {
	t.Parallel()

	records := []matbench.ResultRecord{
		rec("1", 100, 2.0),
		rec("1", 200, 8.0),
		rec("8", 200, 1.0),
	}

	speedups, err := matbench.ComputeSpeedup(matbench.AggregateBySize(records, nil), "1")
	require.NoError(t, err)

	require.Len(t, speedups["8"], 1)

	_, ok := speedups["8"].At(100)
	assert.False(t, ok)

	v, ok := speedups["8"].At(200)
	require.True(t, ok)
	assert.InDelta(t, 8.0, v, 1e-12)
}

func Test_ComputeSpeedup_Uses_Named_Baseline_When_Categories_Are_Text(t *testing.T) {
	t.Parallel()

	records := []matbench.ResultRecord{
		rec("O0", 512, 4.0),
		rec("O3", 512, 1.0),
	}

	speedups, err := matbench.ComputeSpeedup(matbench.AggregateBySize(records, nil), "O0")
	require.NoError(t, err)

	v, ok := speedups["O3"].At(512)
	require.True(t, ok)
	assert.InDelta(t, 4.0, v, 1e-12)
}

func Test_ScalingBySize_Pivots_Speedups_When_Categories_Numeric(t *testing.T) {
	t.Parallel()

	speedups := map[string]matbench.SpeedupSeries{
		"1":  {{Size: 100, Speedup: 1}, {Size: 200, Speedup: 1}},
		"12": {{Size: 100, Speedup: 5}, {Size: 200, Speedup: 9}},
		"2":  {{Size: 100, Speedup: 1.8}, {Size: 200, Speedup: 1.9}},
	}

	bySize, err := matbench.ScalingBySize(speedups)
	require.NoError(t, err)

	want := matbench.ScalingSeries{
		{Threads: 1, Speedup: 1},
		{Threads: 2, Speedup: 1.9},
		{Threads: 12, Speedup: 9},
	}
	assert.Equal(t, want, bySize[200])
	assert.Len(t, bySize[100], 3)
}

func Test_ScalingBySize_Returns_Error_When_Category_Not_Integer(t *testing.T) {
	t.Parallel()

	_, err := matbench.ScalingBySize(map[string]matbench.SpeedupSeries{
		"O3": {{Size: 100, Speedup: 1}},
	})

	assert.ErrorIs(t, err, matbench.ErrNonNumericCategory)
}
