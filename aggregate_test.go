package matbench_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/matbench"
)

func Test_AggregateBySize_Averages_Runs_When_Size_Repeated(t *testing.T) {
	t.Parallel()

	records := []matbench.ResultRecord{
		rec("1", 100, 1.0),
		rec("1", 100, 3.0),
		rec("1", 100, 2.0),
	}

	agg := matbench.AggregateBySize(records, matbench.ByCategory)
	require.Len(t, agg["1"], 1)

	p := agg["1"][0]
	assert.Equal(t, 100, p.Size)
	assert.Equal(t, 3, p.Runs)
	assert.InDelta(t, 2.0, p.Mean, 1e-12)
	assert.InDelta(t, 1.0, p.StdDev, 1e-12)
	assert.InDelta(t, 1.0, p.Min, 1e-12)
	assert.InDelta(t, 3.0, p.Max, 1e-12)
	assert.InDelta(t, 2.0, p.Median, 1e-12)
	assert.LessOrEqual(t, p.Lo, p.Median)
	assert.GreaterOrEqual(t, p.Hi, p.Median)
}

func Test_AggregateBySize_Returns_Sizes_Ascending_When_Input_Unordered(t *testing.T) {
	t.Parallel()

	records := []matbench.ResultRecord{
		rec("2", 400, 4),
		rec("2", 100, 1),
		rec("2", 300, 3),
		rec("2", 200, 2),
	}

	agg := matbench.AggregateBySize(records, nil)

	assert.Equal(t, []int{100, 200, 300, 400}, agg["2"].Sizes())
}

func Test_AggregateBySize_Sets_Zero_StdDev_When_Single_Run(t *testing.T) {
	t.Parallel()

	agg := matbench.AggregateBySize([]matbench.ResultRecord{rec("1", 50, 0.25)}, nil)
	require.Len(t, agg["1"], 1)

	p := agg["1"][0]
	assert.Zero(t, p.StdDev)
	assert.InDelta(t, 0.25, p.Lo, 1e-12)
	assert.InDelta(t, 0.25, p.Hi, 1e-12)
}

func Test_AggregateBySize_Groups_By_Source_When_BySource_Used(t *testing.T) {
	t.Parallel()

	records := []matbench.ResultRecord{
		{Category: "6", Size: 100, Time: 1, Source: "machine_1"},
		{Category: "6", Size: 100, Time: 3, Source: "machine_2"},
		{Category: "6", Size: 200, Time: 5, Source: "machine_2"},
	}

	agg := matbench.AggregateBySize(records, matbench.BySource)

	assert.Equal(t, []string{"machine_1", "machine_2"}, agg.Labels())
	assert.Equal(t, []int{100, 200}, agg.Sizes())
	assert.Equal(t, []int{100}, agg["machine_1"].Sizes())
	assert.Equal(t, []int{100}, matbench.CommonSizes(agg["machine_1"], agg["machine_2"]))
}

func Test_AggregateBySize_Returns_Empty_When_No_Records(t *testing.T) {
	t.Parallel()

	agg := matbench.AggregateBySize(nil, nil)

	assert.Empty(t, agg)
	assert.Empty(t, agg.Sizes())
	assert.Empty(t, agg.Labels())
}

func Test_Series_At_Returns_False_When_Size_Missing(t *testing.T) {
	t.Parallel()

	agg := matbench.AggregateBySize([]matbench.ResultRecord{rec("1", 100, 1), rec("1", 300, 3)}, nil)

	_, ok := agg["1"].At(200)
	assert.False(t, ok)

	p, ok := agg["1"].At(300)
	require.True(t, ok)
	assert.InDelta(t, 3.0, p.Mean, 1e-12)
}

func Test_Series_Restrict_Keeps_Only_Given_Sizes(t *testing.T) {
	t.Parallel()

	agg := matbench.AggregateBySize([]matbench.ResultRecord{
		rec("1", 100, 1), rec("1", 200, 2), rec("1", 300, 3),
	}, nil)

	got := agg["1"].Restrict([]int{300, 100, 999})

	assert.Equal(t, []int{100, 300}, got.Sizes())
}

func Test_Filter_Returns_Matching_Records_In_Input_Order(t *testing.T) {
	t.Parallel()

	records := []matbench.ResultRecord{
		rec("6", 200, 2), rec("1", 100, 1), rec("6", 100, 1),
	}

	got := matbench.Filter(records, "6")

	assert.Equal(t, []matbench.ResultRecord{rec("6", 200, 2), rec("6", 100, 1)}, got)
	assert.Empty(t, matbench.Filter(records, "12"))
}
