//go:build !unix

package hostname

func nodename() (string, bool) { return "", false }
