// cryptpdf - AES-256 encryption and decryption of PDF files
// Copyright (C) 2026  The cryptpdf authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Pdfcrypt encrypts and decrypts PDF files with 256-bit AES.
//
// Usage:
//
//	pdfcrypt -encrypt -o out.pdf in.pdf
//	pdfcrypt -decrypt -o out.pdf in.pdf
//
// Passwords can be given with the -user, -owner and -p flags; when no
// password flag is set, the program prompts on the terminal.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"syscall"

	"golang.org/x/term"

	"github.com/rojohyd/cryptpdf"
)

func main() {
	encrypt := flag.Bool("encrypt", false, "encrypt the input file")
	decrypt := flag.Bool("decrypt", false, "decrypt the input file")
	outName := flag.String("o", "", "output file name")
	userPwd := flag.String("user", "", "user password")
	ownerPwd := flag.String("owner", "", "owner password (defaults to the user password)")
	passwd := flag.String("p", "", "password for decryption")
	noMeta := flag.Bool("plain-metadata", false, "leave XMP metadata streams unencrypted")
	flag.Parse()

	if *encrypt == *decrypt || flag.NArg() != 1 || *outName == "" {
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	var out []byte
	if *encrypt {
		pwd := *userPwd
		if pwd == "" {
			pwd = readPassword("user password: ")
		}
		opt := &cryptpdf.EncryptOptions{
			UnencryptedMetadata: *noMeta,
		}
		out, err = cryptpdf.Encrypt(data, pwd, *ownerPwd, opt)
	} else {
		pwd := *passwd
		if pwd == "" {
			pwd = readPassword("password: ")
		}
		out, err = cryptpdf.Decrypt(data, pwd)
	}
	if err != nil {
		log.Fatal(err)
	}

	err = os.WriteFile(*outName, out, 0o666)
	if err != nil {
		log.Fatal(err)
	}
}

func readPassword(prompt string) string {
	fmt.Print(prompt)
	passwd, err := term.ReadPassword(syscall.Stdin)
	fmt.Println("***")
	if err != nil {
		log.Fatal(err)
	}
	return string(passwd)
}
