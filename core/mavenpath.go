package core

import (
	"strings"
)

// MavenPath maps a group:artifact:version coordinate to its repository-relative jar path,
// always using forward slashes.
func MavenPath(coordinate string) (string, error) {
	parts := strings.Split(coordinate, ":")
	if len(parts) != 3 {
		return "", &MalformedCoordinateError{Coordinate: coordinate}
	}
	for _, p := range parts {
		if p == "" {
			return "", &MalformedCoordinateError{Coordinate: coordinate}
		}
	}
	group, artifact, version := parts[0], parts[1], parts[2]

	return strings.ReplaceAll(group, ".", "/") + "/" +
		artifact + "/" +
		version + "/" +
		artifact + "-" + version + ".jar", nil
}

// MavenURL joins a maven repository base URL with the mapped path of coordinate
func MavenURL(base string, coordinate string) (string, error) {
	p, err := MavenPath(coordinate)
	if err != nil {
		return "", err
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + p, nil
}
