// Package tools is the command surface of docxedit.
//
// Every command is a [Tool] with a JSON schema. A [Registry] decodes and
// validates arguments, runs the tool against the caller's session and turns
// the outcome into a [Result] whose Status is the line shown to users.
//
// Tools:
//   - document: create_document, open_document, save_document,
//     save_as_document, create_document_copy, get_document_info
//   - content: add_paragraph, add_heading, delete_paragraph, delete_text,
//     search_text, search_and_replace, find_and_replace, replace_section,
//     edit_section_by_keyword
//   - table: add_table, add_table_row, delete_table_row, edit_table_cell,
//     merge_table_cells, split_table
//   - layout: add_page_break, set_page_margins
//   - view: get_document_text, get_table, export_html
package tools
