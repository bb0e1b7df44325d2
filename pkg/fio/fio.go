package fio

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/briandowns/spinner"
	"github.com/kastenhq/fiostat/pkg/common"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"k8s.io/client-go/kubernetes"
)

const readChunkSize = 4096

// FIO is an interface that represents FIO related commands
type FIO interface {
	RunFio(ctx context.Context, args *RunFIOArgs) (*RunFIOResult, error)
}

// MetricsSink receives every sample taken from fio's status reports.
type MetricsSink interface {
	EnsureBucket(ctx context.Context, bucket, org string) error
	Write(ctx context.Context, sample Sample, bucket, org string) error
}

// FIOrunner implements FIO. It runs fio locally and streams each status
// report into Sink.
type FIOrunner struct {
	Sink MetricsSink
	// KubeCli is only needed when the job lives in a ConfigMap.
	KubeCli kubernetes.Interface
	// Out receives one line per sample. Defaults to os.Stdout.
	Out io.Writer
	// Registerer receives the pipeline counters. Nil leaves them unregistered.
	Registerer prometheus.Registerer
	// Progress shows a spinner until the first report arrives.
	Progress bool
	// Now stamps samples. Defaults to time.Now.
	Now func() time.Time

	fioSteps fioSteps
}

type RunFIOArgs struct {
	FIOJobFilepath string
	Bucket         string
	Org            string
	Binary         string
}

func (a *RunFIOArgs) Validate() error {
	if a.FIOJobFilepath == "" || a.Bucket == "" || a.Org == "" {
		return fmt.Errorf("Require fields are missing. (FIOJobFilepath, Bucket, Org)")
	}
	return nil
}

type RunFIOResult struct {
	JobFile        string     `json:"jobFile,omitempty"`
	Frames         int        `json:"frames"`
	Samples        int        `json:"samples"`
	Writes         int        `json:"writes"`
	WriteFailures  int        `json:"writeFailures"`
	BucketError    string     `json:"bucketError,omitempty"`
	DiscardedBytes int        `json:"discardedBytes"`
	ExitCode       int        `json:"exitCode"`
	LastReport     *FioResult `json:"lastReport,omitempty"`
}

func (f *FIOrunner) RunFio(ctx context.Context, args *RunFIOArgs) (*RunFIOResult, error) {
	f.fioSteps = &fioStepper{cli: f.KubeCli}
	return f.RunFioHelper(ctx, args)
}

// RunFioHelper drives one fio run to exactly one outcome: nil, a
// *SubprocessError, or an error matching ErrUnexpected.
func (f *FIOrunner) RunFioHelper(ctx context.Context, args *RunFIOArgs) (res *RunFIOResult, err error) {
	if f.Sink == nil || f.fioSteps == nil { // for UT purposes
		return nil, fmt.Errorf("sink uninitialized")
	}
	if err := args.Validate(); err != nil {
		return nil, err
	}
	run := &fioRun{
		runner: f,
		args:   args,
		result: &RunFIOResult{JobFile: args.FIOJobFilepath},
	}
	defer func() {
		if r := recover(); r != nil {
			res, err = run.result, unexpected(fmt.Errorf("%v", r), "Recovered from panic during fio run")
		}
	}()
	run.metrics = newPipelineMetrics(f.Registerer)
	return run.execute(ctx)
}

func (f *FIOrunner) out() io.Writer {
	if f.Out == nil {
		return os.Stdout
	}
	return f.Out
}

func (f *FIOrunner) now() time.Time {
	if f.Now == nil {
		return time.Now()
	}
	return f.Now()
}

type runState int

const (
	stateNotStarted runState = iota
	stateRunning
	stateDraining
	stateTerminated
)

func (s runState) String() string {
	switch s {
	case stateNotStarted:
		return "NotStarted"
	case stateRunning:
		return "Running"
	case stateDraining:
		return "Draining"
	case stateTerminated:
		return "Terminated"
	}
	return fmt.Sprintf("runState(%d)", int(s))
}

type fioRun struct {
	runner        *FIOrunner
	args          *RunFIOArgs
	state         runState
	assembler     FrameAssembler
	metrics       *pipelineMetrics
	bucketChecked bool
	result        *RunFIOResult
	spin          *spinner.Spinner
}

func (r *fioRun) transition(to runState) {
	log.Debug().Stringer("from", r.state).Stringer("to", to).Msg("fio run state change")
	r.state = to
}

func (r *fioRun) execute(ctx context.Context) (*RunFIOResult, error) {
	steps := r.runner.fioSteps
	jobFilePath, cleanup, err := steps.loadJobFile(ctx, r.args.FIOJobFilepath)
	if err != nil {
		return r.result, unexpected(err, "Unable to load fio job")
	}
	defer cleanup()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	proc, err := steps.startFIO(runCtx, r.args.Binary, jobFilePath)
	if err != nil {
		return r.result, unexpected(err, "Failed to start fio")
	}
	waited := false
	defer func() {
		if !waited {
			cancel()
			_, _ = proc.Wait()
		}
	}()
	r.transition(stateRunning)
	r.startProgress()
	defer r.stopProgress()

	if err := r.pump(runCtx, proc.Stdout()); err != nil {
		return r.result, unexpected(err, "Failed reading fio output")
	}

	r.transition(stateDraining)
	if n := r.assembler.Close(); n > 0 {
		log.Debug().Int("bytes", n).Msg("Discarding incomplete fio report at end of output")
	}
	r.result.DiscardedBytes = r.assembler.Discarded()
	r.metrics.discardedBytes.Add(float64(r.result.DiscardedBytes))

	stderr, _ := io.ReadAll(proc.Stderr())
	code, err := proc.Wait()
	waited = true
	r.transition(stateTerminated)
	r.result.ExitCode = code
	if err != nil {
		return r.result, unexpected(err, "Failed waiting for fio")
	}
	if ctx.Err() != nil {
		return r.result, unexpected(ctx.Err(), "fio run cancelled")
	}
	if code != 0 {
		return r.result, &SubprocessError{ExitCode: code, Stderr: string(stderr)}
	}
	return r.result, nil
}

// pump reads fio's stdout until EOF and runs every completed frame through
// the pipeline.
func (r *fioRun) pump(ctx context.Context, stdout io.Reader) error {
	buf := make([]byte, readChunkSize)
	for {
		n, err := stdout.Read(buf)
		if n > 0 {
			for _, frame := range r.assembler.Feed(buf[:n]) {
				r.handleFrame(ctx, frame)
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (r *fioRun) handleFrame(ctx context.Context, frame []byte) {
	r.stopProgress()
	r.result.Frames++
	r.metrics.frames.Inc()

	report, err := ParseReport(frame)
	if err != nil {
		log.Debug().Err(err).Msg("Skipping fio report")
		return
	}
	r.result.LastReport = report
	sample, ok := ExtractSample(report, r.runner.now())
	if !ok {
		return
	}
	r.result.Samples++
	r.metrics.samples.Inc()
	fmt.Fprintln(r.runner.out(), sample.String())

	r.ensureBucket(ctx)
	if err := r.runner.Sink.Write(ctx, sample, r.args.Bucket, r.args.Org); err != nil {
		r.result.WriteFailures++
		r.metrics.writeFailures.Inc()
		log.Error().Err(err).Str("bucket", r.args.Bucket).Msg("Failed to write sample")
		return
	}
	r.result.Writes++
	r.metrics.writes.Inc()
}

// ensureBucket provisions the bucket the first time a sample needs it. A
// failure is reported once and writes are still attempted.
func (r *fioRun) ensureBucket(ctx context.Context) {
	if r.bucketChecked {
		return
	}
	r.bucketChecked = true
	if err := r.runner.Sink.EnsureBucket(ctx, r.args.Bucket, r.args.Org); err != nil {
		r.result.BucketError = err.Error()
		fmt.Fprintf(r.runner.out(), "Error creating bucket: %s\n", err.Error())
		log.Error().Err(err).Str("bucket", r.args.Bucket).Str("org", r.args.Org).Msg("Unable to ensure bucket")
	}
}

func (r *fioRun) startProgress() {
	if !r.runner.Progress {
		return
	}
	r.spin = spinner.New(spinner.CharSets[9], 100*time.Millisecond)
	r.spin.Suffix = " Waiting for fio status report"
	r.spin.Start()
}

func (r *fioRun) stopProgress() {
	if r.spin == nil {
		return
	}
	r.spin.Stop()
	r.spin = nil
}

type fioSteps interface {
	loadJobFile(ctx context.Context, ref string) (string, func(), error)
	startFIO(ctx context.Context, binary, jobFilePath string) (fioProcess, error)
}

// fioProcess is a started fio. Stderr is only read once Stdout is drained.
type fioProcess interface {
	Stdout() io.Reader
	Stderr() io.Reader
	Wait() (int, error)
}

type fioStepper struct {
	cli kubernetes.Interface
}

func fioCommandArgs(jobFilePath string) []string {
	return []string{common.FIOOutputFormatArg, common.FIOStatusIntervalArg, jobFilePath}
}

func (s *fioStepper) startFIO(ctx context.Context, binary, jobFilePath string) (fioProcess, error) {
	if binary == "" {
		binary = common.FIOBinary
	}
	cmd := exec.CommandContext(ctx, binary, fioCommandArgs(jobFilePath)...)
	cmd.Env = append(os.Environ(), common.UnbufferedEnv)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		stdout.Close()
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		stdout.Close()
		stderr.Close()
		return nil, errors.Wrapf(err, "Error running command:(%v)", cmd.Args)
	}
	log.Debug().Str("cmd", cmd.String()).Int("pid", cmd.Process.Pid).Msg("Started fio")
	return &execProcess{cmd: cmd, stdout: stdout, stderr: stderr}, nil
}

type execProcess struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr io.ReadCloser
}

func (p *execProcess) Stdout() io.Reader { return p.stdout }

func (p *execProcess) Stderr() io.Reader { return p.stderr }

// Wait reaps fio. A non-zero exit is returned as a code, not an error.
func (p *execProcess) Wait() (int, error) {
	err := p.cmd.Wait()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, err
	}
	return 0, nil
}
