package utils

import (
	"syscall"

	ps "github.com/mitchellh/go-ps"
)

// KillProcessTree kills the process group of pid and any descendants that
// escaped it. Solvers may fork helpers; nothing should outlive the run.
func KillProcessTree(pid int) {
	// The child is started with Setpgid, so the group catches most of it.
	// We don't want to handle errors in the cleanup function.
	_ = syscall.Kill(-pid, syscall.SIGKILL)

	procs, err := ps.Processes()
	if err != nil {
		return
	}
	children := make(map[int][]int)
	for _, p := range procs {
		children[p.PPid()] = append(children[p.PPid()], p.Pid())
	}
	stack := []int{pid}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range children[cur] {
			_ = syscall.Kill(c, syscall.SIGKILL)
			stack = append(stack, c)
		}
	}
}
