//go:build unix

package hostname

import "golang.org/x/sys/unix"

func nodename() (string, bool) {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return "", false
	}
	return unix.ByteSliceToString(u.Nodename[:]), true
}
