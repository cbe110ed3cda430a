// Package testutil provides test helpers for modpack tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// Mkdir creates a directory (and its parents) below dir.
func Mkdir(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
	return path
}

const backendSrc = "rental-backend/src/main/java/de/cenglisch/rentalbackend"

// PackageInfo renders a package-info.java with the given annotation body.
func PackageInfo(module, doc, annotation string) string {
	content := ""
	if doc != "" {
		content += doc + "\n"
	}
	if annotation != "" {
		content += annotation + "\n"
	}
	content += "package de.cenglisch.rentalbackend." + module + ";\n"
	return content
}

// Compose is the docker-compose.yaml written by NewMonorepo. Key order matters:
// authentik-server precedes authentik-worker.
const Compose = `services:
  postgres:
    image: postgres:16
  authentik-server:
    image: ghcr.io/goauthentik/server:2024.2
  authentik-worker:
    image: ghcr.io/goauthentik/server:2024.2
  redis:
    image: redis:7
  mailpit:
    build: ./mailpit
`

// NewMonorepo builds a small rental monorepo under a temp dir and returns its root.
//
// Backend: buchung (depends on warenbestand::api and common), warenbestand,
// common (OPEN), bootstrap. Frontend: customer, employee, reporting.
// Infrastructure: the Compose manifest plus postgres and authentik folders.
func NewMonorepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	WriteFile(t, root, backendSrc+"/buchung/package-info.java", PackageInfo("buchung",
		"/**\n * Booking management.\n * Handles reservations.\n * Third line is dropped.\n */",
		`@ApplicationModule(displayName = "Buchung", allowedDependencies = {"warenbestand::api", "common"})`))
	WriteFile(t, root, backendSrc+"/buchung/api/BuchungApi.java", "class BuchungApi {}\n")
	WriteFile(t, root, backendSrc+"/buchung/core/domain/Buchung.java", "class Buchung {}\n")
	WriteFile(t, root, backendSrc+"/buchung/core/application/BuchungService.java", "class BuchungService {}\n")
	WriteFile(t, root, backendSrc+"/buchung/core/adapter/BuchungController.java", "class BuchungController {}\n")

	WriteFile(t, root, backendSrc+"/warenbestand/package-info.java", PackageInfo("warenbestand",
		"/**\n * Vehicle inventory.\n */",
		`@ApplicationModule(displayName = "Warenbestand")`))
	WriteFile(t, root, backendSrc+"/warenbestand/api/FahrzeugApi.java", "class FahrzeugApi {}\n")

	WriteFile(t, root, backendSrc+"/common/package-info.java", PackageInfo("common", "",
		`@ApplicationModule(type = ApplicationModule.Type.OPEN)`))
	WriteFile(t, root, backendSrc+"/common/Money.java", "class Money {}\n")

	WriteFile(t, root, backendSrc+"/bootstrap/package-info.java", PackageInfo("bootstrap", "", ""))

	WriteFile(t, root, "rental-backend/src/main/resources/application.yml", "spring: {}\n")
	WriteFile(t, root, "rental-backend/src/main/resources/db/changelog/001-init.sql", "create table x();\n")
	WriteFile(t, root, "rental-backend/src/main/resources/db/changelog/master.yaml", "databaseChangeLog: []\n")

	WriteFile(t, root, "rental-frontend/package.json", "{}\n")
	WriteFile(t, root, "rental-frontend/vite.config.ts", "export default {}\n")
	WriteFile(t, root, "rental-frontend/src/App.tsx", "export const App = () => null\n")
	WriteFile(t, root, "rental-frontend/src/main.tsx", "import './App'\n")
	WriteFile(t, root, "rental-frontend/src/shared/api.ts", "export {}\n")
	WriteFile(t, root, "rental-frontend/src/modules/customer/Profile.tsx", "export {}\n")
	WriteFile(t, root, "rental-frontend/src/modules/employee/Dashboard.tsx", "export {}\n")
	WriteFile(t, root, "rental-frontend/src/modules/employee/store.ts", "export {}\n")
	WriteFile(t, root, "rental-frontend/src/modules/reporting/Report.tsx", "export {}\n")
	WriteFile(t, root, "rental-frontend/src/modules/README.md", "not a module\n")

	WriteFile(t, root, "rental-infrastructure/docker-compose.yaml", Compose)
	WriteFile(t, root, "rental-infrastructure/postgres/init.sql", "create database rental;\n")
	WriteFile(t, root, "rental-infrastructure/postgres/init.sh", "#!/bin/sh\n")
	WriteFile(t, root, "rental-infrastructure/authentik/blueprints.yaml", "version: 1\n")

	return root
}

// FakePacker writes an executable shell script standing in for the packer
// and returns its path. Tests using it are skipped on Windows.
func FakePacker(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake packer scripts need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "fake-packer")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatalf("failed to write fake packer: %v", err)
	}
	return path
}
