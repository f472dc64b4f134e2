package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threadsResults = `Threads,Size,Time
1,100,2.0
1,100,2.0
2,100,1.0
1,200,8.0
2,200,3.0
`

func writeFile(t *testing.T, root, rel, data string) string {
	t.Helper()

	fullPath := filepath.Join(root, rel)

	err := os.WriteFile(fullPath, []byte(data), 0o600)
	if err != nil {
		t.Fatalf("write %s: %v", fullPath, err)
	}

	return fullPath
}

func runCmd(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	code := run(args, &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

func requirePNG(t *testing.T, path string) {
	t.Helper()

	file, err := os.Open(path)
	require.NoError(t, err)

	defer func() { _ = file.Close() }()

	_, err = png.Decode(file)
	require.NoError(t, err, "decode %s", path)
}

func Test_Run_Prints_Usage_When_No_Command(t *testing.T) {
	t.Parallel()

	code, _, stderr := runCmd(t)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Usage:")
}

func Test_Run_Returns_1_When_Command_Unknown(t *testing.T) {
	t.Parallel()

	code, _, stderr := runCmd(t, "plot")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown command: plot")
}

func Test_Run_Returns_0_When_Help_Requested(t *testing.T) {
	t.Parallel()

	code, stdout, _ := runCmd(t, "--help")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "Commands:")

	code, _, stderr := runCmd(t, "time", "-h")
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "benchplot time")
}

func Test_Time_Prints_Usage_When_Too_Many_Arguments(t *testing.T) {
	t.Parallel()

	code, _, stderr := runCmd(t, "time", "a.csv", "b.csv")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "time takes 1 input file(s), got 2")
	assert.Contains(t, stderr, "Usage:")
}

func Test_Time_Returns_1_When_File_Missing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	code, _, stderr := runCmd(t, "time", "--out", dir, filepath.Join(dir, "missing.csv"))

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "file not found")
}

func Test_Time_Returns_1_When_Row_Malformed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "bad.csv", "Threads,Size,Time\n1,100\n")

	code, _, stderr := runCmd(t, "time", "--out", dir, path)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "bad.csv:2")
	assert.NoFileExists(t, filepath.Join(dir, "bad_execution_time.png"))
}

func Test_Time_Writes_Chart_And_Table_When_Input_Valid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "machine_1_results.csv", threadsResults)

	code, stdout, stderr := runCmd(t, "time", "--out", dir, path)
	require.Equal(t, 0, code, stderr)

	requirePNG(t, filepath.Join(dir, "machine_1_execution_time.png"))

	lines := strings.Split(stdout, "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Equal(t, []string{"100", "2.000000", "1.000000"}, strings.Fields(lines[2]))
	assert.Contains(t, stdout, "Wrote: ")
}

func Test_Time_Reads_GoBench_Output_When_Format_Gobench(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "bench.txt",
		"BenchmarkMultiply/threads=1/size=64-8   100   2000000 ns/op\n"+
			"BenchmarkMultiply/threads=2/size=64-8   100   1000000 ns/op\n")

	code, stdout, stderr := runCmd(t, "time", "--format", "gobench", "--out", dir, path)
	require.Equal(t, 0, code, stderr)

	requirePNG(t, filepath.Join(dir, "bench_execution_time.png"))
	assert.Contains(t, stdout, "0.002000")
}

func Test_Time_Returns_1_When_Format_Unknown(t *testing.T) {
	t.Parallel()

	code, _, stderr := runCmd(t, "time", "--format", "json", "x.csv")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid --format")
}

func Test_Speedup_Writes_Chart_And_Table_When_Baseline_Present(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "results.csv", threadsResults)

	code, stdout, stderr := runCmd(t, "speedup", "--out", dir, path)
	require.Equal(t, 0, code, stderr)

	requirePNG(t, filepath.Join(dir, "speedup_plot.png"))
	assert.Contains(t, stdout, "200x200")
	assert.Contains(t, stdout, "2.67x")
	assert.Contains(t, stdout, "1.00x")
}

func Test_Speedup_Returns_1_When_Baseline_Missing_At_Size(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "results.csv", "Threads,Size,Time\n1,100,2\n2,100,1\n2,200,3\n")

	code, _, stderr := runCmd(t, "speedup", "--out", dir, path)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, `missing baseline "1" at size 200`)
}

func Test_Speedup_Returns_1_When_Category_Time_Is_Zero(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "results.csv", "Threads,Size,Time\n1,10,0.000001\n2,10,0\n")

	code, stdout, stderr := runCmd(t, "speedup", "--out", dir, path)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, `zero mean time for "2" at size 10`)
	assert.NotContains(t, stderr, "infinite")
	assert.Empty(t, stdout)
	assert.NoFileExists(t, filepath.Join(dir, "speedup_plot.png"))
}

func Test_Speedup_Returns_1_When_Baseline_Not_A_Thread_Count(t *testing.T) {
	t.Parallel()

	code, _, stderr := runCmd(t, "speedup", "--baseline", "one", "results.csv")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "must be a thread count")
}

func Test_Compare_Plots_Common_Sizes_When_Two_Inputs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "machine_1_results.csv", "Threads,Size,Time\n6,100,1.0\n6,200,4.0\n6,300,9.0\n1,100,5\n")
	b := writeFile(t, dir, "machine_2_results.csv", "Threads,Size,Time\n6,100,2.0\n6,300,4.5\n6,400,16\n")

	code, stdout, stderr := runCmd(t, "compare", "--out", dir, a, b)
	require.Equal(t, 0, code, stderr)

	requirePNG(t, filepath.Join(dir, "comparison_6_threads.png"))
	assert.Contains(t, stdout, "+100.0%")
	assert.Contains(t, stdout, "-50.0%")
	assert.NotContains(t, stdout, "\n200 ")
	assert.NotContains(t, stdout, "\n400 ")
}

func Test_Compare_Returns_1_When_No_Common_Size(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "a.csv", "Threads,Size,Time\n6,100,1\n")
	b := writeFile(t, dir, "b.csv", "Threads,Size,Time\n6,200,1\n")

	code, _, stderr := runCmd(t, "compare", "--out", dir, a, b)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "no matrix size in common")
}

func Test_Compare_Returns_1_When_Thread_Count_Absent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "a.csv", "Threads,Size,Time\n6,100,1\n")
	b := writeFile(t, dir, "b.csv", "Threads,Size,Time\n6,100,1\n")

	code, _, stderr := runCmd(t, "compare", "--threads", "8", "--out", dir, a, b)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "no results for 8 threads")
}

func Test_Compare_Prints_Usage_When_One_Input(t *testing.T) {
	t.Parallel()

	code, _, stderr := runCmd(t, "compare", "only.csv")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "compare takes 2 input file(s), got 1")
}

func Test_Configs_Writes_Chart_And_Speedups_When_Input_Valid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "results.csv", `dimension,configuration,time
64,Standard,0.4
64,O3 + transpose,0.1
128,Standard,3.2
128,Standard,3.0
128,O3 + transpose,0.62
`)

	code, stdout, stderr := runCmd(t, "configs", "--out", dir, path)
	require.Equal(t, 0, code, stderr)

	requirePNG(t, filepath.Join(dir, "plots", "matrix_multiplication_performance.png"))

	assert.Contains(t, stdout, "Speedups for 128x128 matrices")
	assert.Contains(t, stdout, "5.00x")

	header := strings.Fields(strings.Split(stdout, "\n")[2])
	assert.Equal(t, []string{"Size", "Standard", "O3", "+", "transpose"}, header)
}

func Test_Configs_Writes_Chart_When_Axes_Hold_Single_Value(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name string
		data string
		want string
	}

	tests := []testCase{
		{name: "OneRow", data: "dimension,configuration,time\n512,Standard,0.5\n", want: "512x512"},
		{
			name: "EqualTimes",
			data: "dimension,configuration,time\n64,Standard,0.25\n128,Standard,0.25\n64,O3 + loop,0.25\n128,O3 + loop,0.25\n",
			want: "1.00x",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := writeFile(t, dir, "results.csv", tc.data)

			var (
				code           int
				stdout, stderr string
			)

			require.NotPanics(t, func() {
				code, stdout, stderr = runCmd(t, "configs", "--out", dir, path)
			})
			require.Equal(t, 0, code, stderr)

			requirePNG(t, filepath.Join(dir, "plots", "matrix_multiplication_performance.png"))
			assert.Contains(t, stdout, tc.want)
		})
	}
}

func Test_Configs_Prints_Usage_When_No_Input(t *testing.T) {
	t.Parallel()

	code, _, stderr := runCmd(t, "configs")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "configs takes 1 input file(s), got 0")
}

func Test_IsPositiveInt_Rejects_Non_Normalized_Counts(t *testing.T) {
	t.Parallel()

	assert.True(t, isPositiveInt("1"))
	assert.True(t, isPositiveInt("32"))
	assert.False(t, isPositiveInt("0"))
	assert.False(t, isPositiveInt("01"))
	assert.False(t, isPositiveInt("-2"))
	assert.False(t, isPositiveInt("Standard"))
}

func Test_DatasetName_Strips_Extension_And_Results_Suffix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "machine_1", datasetName("/data/machine_1_results.csv"))
	assert.Equal(t, "results", datasetName("results.csv"))
	assert.Equal(t, "bench", datasetName("bench.txt"))
}

func Test_FmtPct_Adds_Sign_When_Positive(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "+12.5%", fmtPct(12.5))
	assert.Equal(t, "-3.0%", fmtPct(-3))
	assert.InDelta(t, 100.0, pctChange(2, 1), 1e-12)
	assert.Zero(t, pctChange(1, 0))
}
