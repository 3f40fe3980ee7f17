// Copyright 2024 Harvesting Media. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package dataproc moves marketing contact lists from uploaded tabular files into the
worksheets of the shared Harvesting Media Google spreadsheet.

dataproc is normally run as a small web tool (the serve command) behind a shared
password gate: an operator uploads a CSV, XLSX or delimited TXT file, maps its
columns onto the target schema of a named process and the tool normalizes the
mapped fields and writes them to the process's worksheet, either replacing the
worksheet contents or appending after the last populated row.

dataproc supports the following commands:

  - serve, to run the upload web tool
  - import, to run a single import from the command line (optionally interactive)
  - export, to download a worksheet as a TSV file
  - processes, to list the configured process definitions
  - hash-password, to generate the bcrypt hash for the password gate
  - version, to display the current version
*/
package dataproc
