package monitor

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/pranshuparmar/renderwatch/internal/events"
	"github.com/pranshuparmar/renderwatch/internal/platform"
	"github.com/pranshuparmar/renderwatch/internal/proc"
	"github.com/pranshuparmar/renderwatch/internal/proc/mocks"
)

const psAux = `USER       PID  %CPU %MEM      VSZ    RSS   TT  STAT STARTED      TIME COMMAND
artist    4242  98.0  3.1  5123456 512000   ??  R    10:01AM   5:12.00 /Applications/Adobe After Effects 2024/aerender -project /jobs/shot.aep
artist     811   0.1  0.2   412345  20480   ??  S     9:00AM   0:01.00 /usr/bin/ssh-agent -l
`

const psAuxHostOnly = `USER       PID  %CPU %MEM      VSZ    RSS   TT  STAT STARTED      TIME COMMAND
artist    5151  12.0  9.1  9123456 912000   ??  S     9:30AM  12:00.00 /opt/adobe/afterfx -noui
artist     811   0.1  0.2   412345  20480   ??  S     9:00AM   0:01.00 /usr/bin/ssh-agent -l
`

const tasklist = "\r\nImage Name                     PID Session Name        Session#    Mem Usage\r\n" +
	"========================= ======== ================ =========== ============\r\n" +
	"System Idle Process              0 Services                   0          8 K\r\n" +
	"AfterFX.com                   3100 Console                    1     12,400 K\r\n" +
	"aerender.exe                  4242 Console                    1    812,340 K\r\n" +
	"aerender.exe                  4343 Console                    1    790,112 K\r\n" +
	"explorer.exe                  2020 Console                    1     98,000 K\r\n"

func newMonitor(t *testing.T, family platform.Family, snapshot string, opts Options) (*Monitor, *mocks.MockExecutor) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	profile := platform.ForFamily(family)
	mockExec := mocks.NewMockExecutor(ctrl)
	if opts.Bypass == "" {
		opts.Bypass = BypassOff
	}
	if !opts.Bypass.Enabled(profile) {
		mockExec.EXPECT().Run(gomock.Any(), profile.ProcessListCommand()).Return(snapshot, nil)
	}

	m, err := New(context.Background(), profile, mockExec, opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return m, mockExec
}

func TestMonitorSnapshot(t *testing.T) {
	tests := []struct {
		name      string
		family    platform.Family
		snapshot  string
		active    bool
		wantNames []string
		wantPIDs  []string
	}{
		{
			name:      "unix worker",
			family:    platform.Linux,
			snapshot:  psAux,
			active:    true,
			wantNames: []string{"aerender"},
			wantPIDs:  []string{"4242"},
		},
		{
			name:      "unix host only",
			family:    platform.Linux,
			snapshot:  psAuxHostOnly,
			active:    true,
			wantNames: []string{"afterfx"},
			wantPIDs:  []string{"5151"},
		},
		{
			name:      "windows worker wins over host",
			family:    platform.Windows,
			snapshot:  tasklist,
			active:    true,
			wantNames: []string{"aerender.exe", "aerender.exe"},
			wantPIDs:  []string{"4242", "4343"},
		},
		{
			name:      "nothing running",
			family:    platform.Linux,
			snapshot:  "USER PID COMMAND\nartist 811 /usr/bin/ssh-agent\n",
			active:    false,
			wantNames: []string{},
			wantPIDs:  []string{},
		},
		{
			name:      "empty output",
			family:    platform.Windows,
			snapshot:  "",
			active:    false,
			wantNames: []string{},
			wantPIDs:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newMonitor(t, tt.family, tt.snapshot, Options{})

			if got := m.IsActive(); got != tt.active {
				t.Errorf("IsActive() = %v, want %v", got, tt.active)
			}
			if got := m.Names(); !reflect.DeepEqual(got, tt.wantNames) {
				t.Errorf("Names() = %v, want %v", got, tt.wantNames)
			}
			if got := m.PIDs(); !reflect.DeepEqual(got, tt.wantPIDs) {
				t.Errorf("PIDs() = %v, want %v", got, tt.wantPIDs)
			}
			if m.Data() != tt.snapshot {
				t.Errorf("Data() does not return the raw snapshot")
			}
		})
	}
}

func TestMonitorBypass(t *testing.T) {
	tests := []struct {
		name   string
		family platform.Family
		mode   BypassMode
	}{
		{"forced on", platform.Linux, BypassOn},
		{"auto on darwin", platform.Darwin, BypassAuto},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No Run expectation: any command would fail the test.
			m, _ := newMonitor(t, tt.family, psAux, Options{Bypass: tt.mode})

			if !m.Bypassed() {
				t.Error("Bypassed() = false, want true")
			}
			if m.IsActive() {
				t.Error("IsActive() = true, want false")
			}
			if len(m.Names()) != 0 || len(m.PIDs()) != 0 {
				t.Errorf("Names()/PIDs() = %v/%v, want empty", m.Names(), m.PIDs())
			}
		})
	}
}

func TestMonitorValidateFreshlyObservedPID(t *testing.T) {
	m, mockExec := newMonitor(t, platform.Linux, psAux, Options{})

	pid := m.PIDs()[0]
	mockExec.EXPECT().
		Run(gomock.Any(), "ps -ww -p "+pid+" -o pid=,args=").
		Return(" 4242 /Applications/Adobe After Effects 2024/aerender -project x.aep\n", nil)

	ok, err := m.Validate(context.Background(), pid)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !ok {
		t.Error("Validate() = false for a pid from the current snapshot")
	}
}

func TestMonitorValidateMatchesArguments(t *testing.T) {
	// The worker only shows up in the argument list, not the short command name.
	const snapshot = `USER       PID %CPU %MEM    VSZ   RSS TTY      STAT START   TIME COMMAND
root      7667  0.0  0.0   2580   896 ?        S    10:01   0:00 sh -c sleep 30 /opt/ae/aerender
root      7668  0.0  0.0   2480   512 ?        S    10:01   0:00 sleep 30
`
	m, mockExec := newMonitor(t, platform.Linux, snapshot, Options{})

	if got := m.PIDs(); len(got) != 1 || got[0] != "7667" {
		t.Fatalf("PIDs() = %v, want [7667]", got)
	}
	mockExec.EXPECT().
		Run(gomock.Any(), "ps -ww -p 7667 -o pid=,args=").
		Return(" 7667 sh -c sleep 30 /opt/ae/aerender\n", nil)

	ok, err := m.Validate(context.Background(), "7667")
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !ok {
		t.Error("Validate() = false for a pid matched through its arguments")
	}
}

func TestMonitorValidateRejectsUnsafePID(t *testing.T) {
	m, _ := newMonitor(t, platform.Linux, psAux, Options{})

	for _, pid := range []string{"", "42; rm -rf /", "12 13", "$(id)"} {
		ok, err := m.Validate(context.Background(), pid)
		if ok || err != nil {
			t.Errorf("Validate(%q) = %v, %v; want false, nil", pid, ok, err)
		}
	}
}

func TestMonitorKill(t *testing.T) {
	m, mockExec := newMonitor(t, platform.Windows, tasklist, Options{})

	gomock.InOrder(
		mockExec.EXPECT().
			Run(gomock.Any(), `tasklist /fi "pid eq 4242"`).
			Return("aerender.exe                  4242 Console                    1    812,340 K\r\n", nil),
		mockExec.EXPECT().
			Run(gomock.Any(), "taskkill /f /t /pid 4242").
			Return("SUCCESS: The process with PID 4242 has been terminated.\r\n", nil),
	)

	out, killed, err := m.Kill(context.Background(), "4242")
	if err != nil {
		t.Fatalf("Kill() error = %v", err)
	}
	if !killed {
		t.Error("Kill() killed = false, want true")
	}
	if out == "" {
		t.Error("Kill() returned no output")
	}
}

func TestMonitorKillCommandFailure(t *testing.T) {
	tests := []struct {
		name       string
		family     platform.Family
		snapshot   string
		validate   string
		validation string
		kill       string
		output     string
	}{
		{
			name:       "unix permission denied",
			family:     platform.Linux,
			snapshot:   psAux,
			validate:   "ps -ww -p 4242 -o pid=,args=",
			validation: " 4242 /opt/adobe/aerender -project /jobs/shot.aep\n",
			kill:       "kill -9 4242",
			output:     "sh: 1: kill: (4242) - Operation not permitted\n",
		},
		{
			name:       "windows process gone",
			family:     platform.Windows,
			snapshot:   tasklist,
			validate:   `tasklist /fi "pid eq 4242"`,
			validation: "aerender.exe                  4242 Console                    1    812,340 K\r\n",
			kill:       "taskkill /f /t /pid 4242",
			output:     "ERROR: The process \"4242\" not found.\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := events.New()
			failed := make(chan events.KillFailedEvent, 1)
			defer bus.Subscribe(func(e events.KillFailedEvent) { failed <- e })()

			m, mockExec := newMonitor(t, tt.family, tt.snapshot, Options{Events: bus})
			gomock.InOrder(
				mockExec.EXPECT().Run(gomock.Any(), tt.validate).Return(tt.validation, nil),
				mockExec.EXPECT().Run(gomock.Any(), tt.kill).Return(tt.output, nil),
			)

			out, killed, err := m.Kill(context.Background(), "4242")
			if killed {
				t.Error("Kill() killed = true for a failed kill command")
			}
			if !errors.Is(err, ErrKillFailed) {
				t.Fatalf("Kill() error = %v, want ErrKillFailed", err)
			}
			var kerr *KillError
			if !errors.As(err, &kerr) || kerr.Output != strings.TrimSpace(tt.output) {
				t.Errorf("Kill() error = %#v", err)
			}
			if out != tt.output {
				t.Errorf("Kill() output = %q, want %q", out, tt.output)
			}

			select {
			case ev := <-failed:
				if ev.PID != "4242" {
					t.Errorf("failure event pid = %q", ev.PID)
				}
			case <-time.After(2 * time.Second):
				t.Fatal("failure event was not delivered")
			}
		})
	}
}

func TestMonitorKillStalePIDIsNoOp(t *testing.T) {
	bus := events.New()
	skipped := make(chan events.KillSkippedEvent, 2)
	defer bus.Subscribe(func(e events.KillSkippedEvent) { skipped <- e })()

	m, mockExec := newMonitor(t, platform.Linux, psAux, Options{Events: bus})

	// Only the validate command may run; a kill -9 would be an unexpected call.
	mockExec.EXPECT().
		Run(gomock.Any(), "ps -ww -p 4242 -o pid=,args=").
		Return("", nil).
		Times(2)

	for range 2 {
		out, killed, err := m.Kill(context.Background(), "4242")
		if err != nil || killed || out != "" {
			t.Fatalf("Kill() = %q, %v, %v; want no-op", out, killed, err)
		}
	}

	select {
	case ev := <-skipped:
		if ev.PID != "4242" {
			t.Errorf("skip event pid = %q", ev.PID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("skip event was not delivered")
	}
}

func TestMonitorLaunchFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExec := mocks.NewMockExecutor(ctrl)
	mockExec.EXPECT().
		Run(gomock.Any(), "ps aux").
		Return("", &proc.LaunchError{Command: "ps aux", Err: proc.ErrCommandNotFound})

	_, err := New(context.Background(), platform.ForFamily(platform.Linux), mockExec, Options{Bypass: BypassOff})
	if !errors.Is(err, proc.ErrLaunch) {
		t.Fatalf("New() error = %v, want ErrLaunch", err)
	}
}

func TestMonitorCustomSignatures(t *testing.T) {
	profile := platform.ForFamily(platform.Linux)
	sigs, err := DefaultSignatures(profile).WithPatterns(`ssh-agent`, "")
	if err != nil {
		t.Fatalf("WithPatterns() error = %v", err)
	}

	m, _ := newMonitor(t, platform.Linux, psAuxHostOnly, Options{Signatures: &sigs})
	if got := m.PIDs(); !reflect.DeepEqual(got, []string{"811"}) {
		t.Errorf("PIDs() = %v, want [811]", got)
	}

	if _, err := DefaultSignatures(profile).WithPatterns(`(`, ""); err == nil {
		t.Error("WithPatterns() accepted an invalid pattern")
	}
}

func TestParseBypassMode(t *testing.T) {
	tests := []struct {
		in      string
		want    BypassMode
		wantErr bool
	}{
		{"", BypassAuto, false},
		{"auto", BypassAuto, false},
		{" ON ", BypassOn, false},
		{"off", BypassOff, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		got, err := ParseBypassMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseBypassMode(%q) = %q, %v", tt.in, got, err)
		}
	}

	linux, darwin := platform.ForFamily(platform.Linux), platform.ForFamily(platform.Darwin)
	if BypassAuto.Enabled(linux) || !BypassAuto.Enabled(darwin) {
		t.Error("auto bypass should apply to darwin only")
	}
	if BypassOff.Enabled(darwin) || !BypassOn.Enabled(linux) {
		t.Error("explicit bypass modes should ignore the platform")
	}
}
