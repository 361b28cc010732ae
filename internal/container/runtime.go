// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container implements container runtime detection and starts
// long-running containers with stdin and stdout attached.
package container

import (
	"fmt"
	"io"
	"os"
	"os/exec"
)

const (
	binDocker = "docker"
	binPodman = "podman"

	// Auto selects docker when available, podman otherwise.
	Auto = "auto"
)

// Mount binds a host path into a container.
type Mount struct {
	Source   string
	Target   string
	ReadOnly bool
}

func (m Mount) flag() string {
	v := m.Source + ":" + m.Target
	if m.ReadOnly {
		v += ":ro"
	}
	return v
}

// Runtime provides container operations: checking availability, verifying
// images, and starting containers.
type Runtime interface {
	// Name returns the runtime name ("docker" or "podman").
	Name() string

	// Available reports whether the runtime binary exists on PATH and
	// responds to an info command.
	Available() bool

	// ImageExists checks whether the named image exists locally.
	// Returns nil when the image is found, or an error describing the failure.
	ImageExists(image string) error

	// Start launches an interactive container running image with args.
	// The caller owns the returned Process and must Close it.
	Start(image string, mounts []Mount, args ...string) (*Process, error)
}

// Process is a running container. Writes to Stdin reach the container's
// standard input; its standard output is read from Stdout.
type Process struct {
	Stdin  io.WriteCloser
	Stdout io.Reader
	wait   func() error
}

// NewProcess assembles a Process from its pipes. wait blocks until the
// process exits.
func NewProcess(stdin io.WriteCloser, stdout io.Reader, wait func() error) *Process {
	return &Process{Stdin: stdin, Stdout: stdout, wait: wait}
}

// Close closes stdin, which ends the container's input, and waits for it
// to exit.
func (p *Process) Close() error {
	inErr := p.Stdin.Close()
	if err := p.wait(); err != nil {
		return err
	}
	return inErr
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	Start(name string, args []string) (*Process, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) Start(name string, args []string) (*Process, error) {
	cmd := exec.Command(name, args...)
	cmd.Stderr = os.Stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return NewProcess(stdin, stdout, cmd.Wait), nil
}

// runtime implements Runtime for a specific container binary. Both Docker
// and Podman share the same logic; they differ only in binary name and the
// subcommand used to check image existence.
type runtime struct {
	bin           string
	imageCheckCmd []string // e.g. ["image", "inspect"] for docker
	exec          executor
}

func (r *runtime) Name() string { return r.bin }

func (r *runtime) Available() bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.RunSilent(r.bin, "info") == nil
}

func (r *runtime) ImageExists(image string) error {
	args := make([]string, 0, len(r.imageCheckCmd)+1)
	args = append(args, r.imageCheckCmd...)
	args = append(args, image)

	if err := r.exec.RunSilent(r.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, r.bin, err)
	}
	return nil
}

func (r *runtime) Start(image string, mounts []Mount, args ...string) (*Process, error) {
	runArgs := []string{"run", "--rm", "-i"}
	for _, m := range mounts {
		runArgs = append(runArgs, "-v", m.flag())
	}
	runArgs = append(runArgs, image)
	runArgs = append(runArgs, args...)

	p, err := r.exec.Start(r.bin, runArgs)
	if err != nil {
		return nil, fmt.Errorf("starting %s container %s: %w", r.bin, image, err)
	}
	return p, nil
}

func newDockerRuntime(exec executor) *runtime {
	return &runtime{
		bin:           binDocker,
		imageCheckCmd: []string{"image", "inspect"},
		exec:          exec,
	}
}

func newPodmanRuntime(exec executor) *runtime {
	return &runtime{
		bin:           binPodman,
		imageCheckCmd: []string{"image", "exists"},
		exec:          exec,
	}
}

var defaultExec = &osExecutor{}

// DetectRuntime tries docker first, falls back to podman. Returns an error
// if neither runtime is available.
func DetectRuntime() (Runtime, error) {
	return detectRuntime(defaultExec)
}

// ByName returns the named runtime ("docker" or "podman"), or detects one
// when name is "auto" or empty. The runtime must be operational.
func ByName(name string) (Runtime, error) {
	return byName(defaultExec, name)
}

func byName(exec executor, name string) (Runtime, error) {
	var rt *runtime
	switch name {
	case "", Auto:
		return detectRuntime(exec)
	case binDocker:
		rt = newDockerRuntime(exec)
	case binPodman:
		rt = newPodmanRuntime(exec)
	default:
		return nil, fmt.Errorf("unknown container runtime %q: use %s, %s, or %s", name, Auto, binDocker, binPodman)
	}
	if !rt.Available() {
		return nil, fmt.Errorf("container runtime %s not found or not operational", name)
	}
	return rt, nil
}

func detectRuntime(exec executor) (Runtime, error) {
	docker := newDockerRuntime(exec)
	if docker.Available() {
		return docker, nil
	}

	podman := newPodmanRuntime(exec)
	if podman.Available() {
		return podman, nil
	}

	return nil, fmt.Errorf(
		"no container runtime available: neither %s nor %s found or operational",
		binDocker, binPodman,
	)
}
