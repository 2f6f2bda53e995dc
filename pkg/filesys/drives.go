// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package filesys

import (
	"os"
	"runtime"
)

// logicalDrives lists the mounted drive roots. Unix-like systems have the
// single root "/".
func logicalDrives() ([]string, error) {
	if runtime.GOOS != "windows" {
		return []string{"/"}, nil
	}

	var drives []string
	for letter := 'A'; letter <= 'Z'; letter++ {
		root := string(letter) + `:\`
		if _, err := os.Stat(root); err == nil {
			drives = append(drives, root)
		}
	}
	return drives, nil
}
